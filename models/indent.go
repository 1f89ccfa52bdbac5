package models

// Indent is one dispatch row rebuilt from its fixed column offsets.
type Indent struct {
	ID       int `json:"id" example:"7"`
	RowIndex int `json:"rowIndex" example:"7"`

	CreatedAt        string `json:"createdAt" example:"01/02/2025 10:15:00"`
	IndentNo         string `json:"indentNo" example:"IN-001"`
	PlantName        string `json:"plantName"`
	OfficeDispatcher string `json:"officeDispatcher"`
	PartyName        string `json:"partyName"`
	VehicleNo        string `json:"vehicleNo"`
	CommodityType    string `json:"commodityType"`
	NoOfPkts         string `json:"noOfPkts"`
	BhartiSize       string `json:"bhartiSize"`
	TotalQty         string `json:"totalQty"`
	TareWeight       string `json:"tareWeight"`
	Remarks          string `json:"remarks"`

	LoadingPointPlanned string `json:"loadingPointPlanned"`
	LoadingPointActual  string `json:"loadingPointActual"`
	VehicleReached      string `json:"vehicleReached"`

	LoadingCompletePlanned string         `json:"loadingCompletePlanned"`
	LoadingCompleteActual  string         `json:"loadingCompleteActual"`
	Loading                LoadingDetails `json:"loading"`

	GatePassPlanned string          `json:"gatePassPlanned"`
	GatePassActual  string          `json:"gatePassActual"`
	GatePass        GatePassDetails `json:"gatePass"`
}

// LoadingDetails are the columns written when loading completes.
type LoadingDetails struct {
	MunsiName        string `json:"munsiName"`
	DriverName       string `json:"driverName"`
	DriverNumber     string `json:"driverNumber"`
	SubCommodity1    string `json:"subCommodity1"`
	Pkts1            string `json:"pkts1"`
	SubCommodity2    string `json:"subCommodity2"`
	Pkts2            string `json:"pkts2"`
	SubCommodity3    string `json:"subCommodity3"`
	Pkts3            string `json:"pkts3"`
	TotalPackets     string `json:"totalPackets"`
	BhartiSize       string `json:"loadingBhartiSize"`
	Quantity         string `json:"loadingQuantity"`
	PacketType       string `json:"loadingPacketType"`
	PacketName       string `json:"loadingPacketName"`
	VehicleImage     string `json:"vehicleImage"`
	VehicleImageView string `json:"vehicleImageView"`
	Status           string `json:"loadingStatus"`
}

// GatePassDetails are the columns written when a gate pass is issued.
type GatePassDetails struct {
	LoadingWeight    string `json:"loadingWeight"`
	NetWeight        string `json:"netWeight"`
	Type             string `json:"gatePassType"`
	Number           string `json:"gpNumber"`
	Date             string `json:"date"`
	VehicleNumber    string `json:"vehicleNumber"`
	VehicleType      string `json:"vehicleType"`
	Transporter      string `json:"transporter"`
	Advance          string `json:"advance"`
	FreightPerQty    string `json:"freightPerQty"`
	Pump             string `json:"pump"`
	Diesel           string `json:"diesel"`
	SubCommodity1    string `json:"subCommodity1"`
	Pkts1            string `json:"pkts1"`
	SubCommodity2    string `json:"subCommodity2"`
	Pkts2            string `json:"pkts2"`
	SubCommodity3    string `json:"subCommodity3"`
	Pkts3            string `json:"pkts3"`
	TotalPackets     string `json:"totalPacket"`
	NetWeightQuintal string `json:"netWeightQuintal"`
	Rate             string `json:"rate"`
	BillDetails      string `json:"billDetails"`
	BillWeight       string `json:"billWeight"`
	InvoiceNo        string `json:"invoiceNo"`
	InvoiceValue     string `json:"invoiceValue"`
	DriverName       string `json:"driverName"`
	DriverNumber     string `json:"driverNumber"`
	CMRNo            string `json:"cmr"`
	LotNo            string `json:"lot"`
	KMSYear          string `json:"kmsYear"`
}

// IndentFilter narrows a list by case-insensitive substring on six fields.
type IndentFilter struct {
	PlantName        string `form:"plantName" json:"plantName"`
	OfficeDispatcher string `form:"officeDispatcher" json:"officeDispatcher"`
	PartyName        string `form:"partyName" json:"partyName"`
	VehicleNo        string `form:"vehicleNo" json:"vehicleNo"`
	CommodityType    string `form:"commodityType" json:"commodityType"`
	IndentNo         string `form:"indentNo" json:"indentNo"`
}

// IndentForm is the create/edit body of an indent.
type IndentForm struct {
	PlantName        string `json:"plantName" example:"Plant 1"`
	OfficeDispatcher string `json:"officeDispatcher" example:"Ramesh"`
	PartyName        string `json:"partyName" example:"ABC Traders"`
	VehicleNo        string `json:"vehicleNo" example:"CG04AB1234"`
	CommodityType    string `json:"commodityType" example:"Rice"`
	NoOfPkts         string `json:"noOfPkts" example:"400"`
	BhartiSize       string `json:"bhartiSize" example:"50"`
	TotalQty         string `json:"totalQty" example:"200"`
	TareWeight       string `json:"tareWeight" example:"8500"`
	Remarks          string `json:"remarks"`
}

// LoadingPointForm edits an indent at the loading-point stage.
type LoadingPointForm struct {
	IndentForm
	VehicleReached string `json:"vehicleReached" example:"Yes"`
}

// ReachedRequest marks a vehicle as arrived.
type ReachedRequest struct {
	VehicleReached string `json:"vehicleReached" example:"Yes"`
}

// LoadingCompleteForm is the loading-complete body. VehicleImage may carry
// a data URL; multipart requests attach the file instead.
type LoadingCompleteForm struct {
	MunsiName         string `json:"munsiName" form:"munsiName"`
	DriverName        string `json:"driverName" form:"driverName"`
	DriverNumber      string `json:"driverNumber" form:"driverNumber"`
	SubCommodity1     string `json:"subCommodity1" form:"subCommodity1"`
	Pkts1             string `json:"pkts1" form:"pkts1"`
	SubCommodity2     string `json:"subCommodity2" form:"subCommodity2"`
	Pkts2             string `json:"pkts2" form:"pkts2"`
	SubCommodity3     string `json:"subCommodity3" form:"subCommodity3"`
	Pkts3             string `json:"pkts3" form:"pkts3"`
	LoadingBhartiSize string `json:"loadingBhartiSize" form:"loadingBhartiSize"`
	LoadingQuantity   string `json:"loadingQuantity" form:"loadingQuantity"`
	LoadingPacketType string `json:"loadingPacketType" form:"loadingPacketType"`
	LoadingPacketName string `json:"loadingPacketName" form:"loadingPacketName"`
	LoadingStatus     string `json:"loadingStatus" form:"loadingStatus"`
	VehicleImage      string `json:"vehicleImage" form:"vehicleImage"`

	ImageBytes    []byte `json:"-" form:"-"`
	ImageMimeType string `json:"-" form:"-"`
}

// GatePassForm is the gate pass body.
type GatePassForm struct {
	LoadingWeight string `json:"loadingWeight" example:"28500"`
	GatePassType  string `json:"gatePassType" example:"Civil Supply"`
	GPNumber      string `json:"gpNumber" example:"GP-1001"`
	Date          string `json:"date" example:"2025-02-01T10:30"`
	VehicleNumber string `json:"vehicleNumber"`
	VehicleType   string `json:"vehicleType"`
	Transporter   string `json:"transporter"`
	Advance       string `json:"advance"`
	FreightPerQty string `json:"freightPerQty"`
	Pump          string `json:"pump"`
	Diesel        string `json:"diesel"`
	SubCommodity1 string `json:"subCommodity1"`
	Pkts1         string `json:"pkts1"`
	SubCommodity2 string `json:"subCommodity2"`
	Pkts2         string `json:"pkts2"`
	SubCommodity3 string `json:"subCommodity3"`
	Pkts3         string `json:"pkts3"`
	Rate          string `json:"rate"`
	BillDetails   string `json:"billDetails"`
	BillWeight    string `json:"billWeight"`
	InvoiceNo     string `json:"invoiceNo"`
	InvoiceValue  string `json:"invoiceValue"`
	DriverName    string `json:"driverName"`
	DriverNumber  string `json:"driverNumber"`
	CMRNo         string `json:"cmr"`
	LotNo         string `json:"lot"`
	KMSYear       string `json:"kmsYear"`
}

// StageQueue is the pending/history split of one workflow stage.
type StageQueue struct {
	Pending []Indent `json:"pending"`
	History []Indent `json:"history"`
}

// DashboardStats are the counters shown on the dashboard cards.
type DashboardStats struct {
	TotalIndents      int `json:"totalIndents"`
	PendingProcessing int `json:"pendingProcessing"`
	ProcessedIndents  int `json:"processedIndents"`
	PendingLoading    int `json:"pendingLoading"`
	LoadingCompleted  int `json:"loadingCompleted"`
	PendingGatePass   int `json:"pendingGatePass"`
	GatePassCompleted int `json:"gatePassCompleted"`
}

// DropdownOptions are the five option lists of the Drop-Down sheet.
type DropdownOptions struct {
	PlantNames        []string `json:"plantNames"`
	OfficeDispatchers []string `json:"officeDispatchers"`
	CommodityTypes    []string `json:"commodityTypes"`
	MunsiNames        []string `json:"munsiNames"`
	SubCommodities    []string `json:"subCommodities"`
}
