package storage

import (
	"fmt"
	"strings"
)

// Dispatch sheet layout. Indexes are 0-based column offsets.
const (
	DispatchFirstDataRow = 6

	ColCreatedAt        = 0  // A
	ColIndentNo         = 1  // B
	ColPlantName        = 2  // C
	ColOfficeDispatcher = 3  // D
	ColPartyName        = 4  // E
	ColVehicleNo        = 5  // F
	ColCommodityType    = 6  // G
	ColNoOfPkts         = 7  // H
	ColBhartiSize       = 8  // I
	ColTotalQty         = 9  // J
	ColTareWeight       = 10 // K
	ColRemarks          = 11 // L

	ColLoadingPointPlanned = 12 // M
	ColLoadingPointActual  = 13 // N
	ColVehicleReached      = 15 // P

	ColLoadingCompletePlanned = 16 // Q
	ColLoadingCompleteActual  = 17 // R
	ColMunsiName              = 19 // T
	ColDriverName             = 20 // U
	ColDriverNumber           = 21 // V
	ColSubCommodity1          = 22 // W
	ColPkts1                  = 23 // X
	ColSubCommodity2          = 24 // Y
	ColPkts2                  = 25 // Z
	ColSubCommodity3          = 26 // AA
	ColPkts3                  = 27 // AB
	ColTotalPackets           = 28 // AC
	ColLoadingBhartiSize      = 29 // AD
	ColLoadingQuantity        = 30 // AE
	ColLoadingPacketType      = 31 // AF
	ColVehicleImage           = 32 // AG
	ColLoadingStatus          = 33 // AH

	ColGatePassPlanned    = 34 // AI
	ColGatePassActual     = 35 // AJ
	ColGPLoadingWeight    = 37 // AL
	ColGPNetWeight        = 38 // AM
	ColGatePassType       = 39 // AN
	ColGatePassNo         = 40 // AO
	ColGPDate             = 41 // AP
	ColGPVehicleNumber    = 42 // AQ
	ColGPVehicleType      = 43 // AR
	ColGPTransporter      = 44 // AS
	ColGPAdvance          = 45 // AT
	ColGPFreightPerQty    = 46 // AU
	ColGPPump             = 47 // AV
	ColGPDiesel           = 48 // AW
	ColGPSubCommodity1    = 49 // AX
	ColGPPkts1            = 50 // AY
	ColGPSubCommodity2    = 51 // AZ
	ColGPPkts2            = 52 // BA
	ColGPSubCommodity3    = 53 // BB
	ColGPPkts3            = 54 // BC
	ColGPTotalPackets     = 55 // BD
	ColGPNetWeightQuintal = 56 // BE
	ColGPRate             = 57 // BF
	ColGPBillDetails      = 58 // BG
	ColGPBillWeight       = 59 // BH
	ColGPInvoiceNo        = 60 // BI
	ColGPInvoiceValue     = 61 // BJ
	ColGPDriverName       = 62 // BK
	ColGPDriverNumber     = 63 // BL
	ColGPCMRNo            = 64 // BM
	ColGPLotNo            = 65 // BN
	ColGPKMSYear          = 66 // BO

	ColLoadingPacketName = 67 // BP
)

// Login sheet layout.
const (
	LoginFirstDataRow = 1

	ColUserSerialNo = 0 // A
	ColUserName     = 1 // B
	ColUserID       = 2 // C
	ColUserPassword = 3 // D
	ColUserRole     = 4 // E
)

// Drop-down sheet layout.
const (
	DropdownFirstDataRow = 1

	ColDropPlantName        = 0 // A
	ColDropOfficeDispatcher = 1 // B
	ColDropCommodityType    = 2 // C
	ColDropMunsiName        = 3 // D
	ColDropSubCommodity     = 4 // E
)

// ColumnIndex converts a column letter ("A", "AB", "BP") to its 0-based index.
func ColumnIndex(letters string) (int, error) {
	letters = strings.ToUpper(strings.TrimSpace(letters))
	if letters == "" {
		return 0, fmt.Errorf("empty column name")
	}
	n := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column name %q", letters)
		}
		n = n*26 + int(r-'A'+1)
	}
	return n - 1, nil
}

// ColumnLetter converts a 0-based index back to its column letter.
func ColumnLetter(index int) string {
	if index < 0 {
		return ""
	}
	var b []byte
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}
