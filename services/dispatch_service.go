package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch/models"
	"dispatch/repository"
	"dispatch/storage"
	"dispatch/utils"

	log "github.com/sirupsen/logrus"
)

const (
	GatePassCivilSupply = "Civil Supply"
	GatePassNormal      = "Normal Gate Pass"

	defaultVehicleReached = "Yes"
	defaultLoadingStatus  = "Complete"
)

// DispatchService runs the indent → loading point → loading complete →
// gate pass workflow against the dispatch sheet.
type DispatchService struct {
	indents  *repository.IndentRepository
	images   *ImageService
	activity *ActivityRecorder
	notifier GatePassNotifier
	loc      *time.Location
	now      func() time.Time
}

type DispatchServiceOptions struct {
	Images   *ImageService
	Activity *ActivityRecorder
	Notifier GatePassNotifier
	Location *time.Location
}

func NewDispatchService(indents *repository.IndentRepository, opts DispatchServiceOptions) *DispatchService {
	if opts.Activity == nil {
		opts.Activity = NewActivityRecorder(nil)
	}
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &DispatchService{
		indents:  indents,
		images:   opts.Images,
		activity: opts.Activity,
		notifier: opts.Notifier,
		loc:      opts.Location,
		now:      time.Now,
	}
}

func (s *DispatchService) timestamp() string {
	return utils.FormatTimestamp(s.now(), s.loc)
}

func (s *DispatchService) list(ctx context.Context) ([]repository.IndentRecord, error) {
	ctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	return s.indents.List(ctx)
}

func (s *DispatchService) get(ctx context.Context, rowIndex int) (*repository.IndentRecord, error) {
	ctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	return s.indents.Get(ctx, rowIndex)
}

func (s *DispatchService) update(ctx context.Context, actor Actor, rowIndex int, patch storage.RowPatch, entry models.ActivityEntry) error {
	wctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	if err := s.indents.Update(wctx, rowIndex, patch); err != nil {
		return err
	}
	entry.SheetName = s.indents.Sheet()
	entry.RowIndex = rowIndex
	entry.ChangedColumns = patch.Columns()
	s.activity.Record(ctx, actor, entry)
	return nil
}

// ---- indents ----

func validateIndentForm(f models.IndentForm) error {
	return requireFields(
		[2]string{"plantName", f.PlantName},
		[2]string{"officeDispatcher", f.OfficeDispatcher},
		[2]string{"partyName", f.PartyName},
		[2]string{"vehicleNo", f.VehicleNo},
		[2]string{"commodityType", f.CommodityType},
	)
}

func indentFormPatch(f models.IndentForm) storage.RowPatch {
	return storage.RowPatch{
		storage.ColPlantName:        strings.TrimSpace(f.PlantName),
		storage.ColOfficeDispatcher: strings.TrimSpace(f.OfficeDispatcher),
		storage.ColPartyName:        strings.TrimSpace(f.PartyName),
		storage.ColVehicleNo:        strings.TrimSpace(f.VehicleNo),
		storage.ColCommodityType:    strings.TrimSpace(f.CommodityType),
		storage.ColNoOfPkts:         strings.TrimSpace(f.NoOfPkts),
		storage.ColBhartiSize:       strings.TrimSpace(f.BhartiSize),
		storage.ColTotalQty:         strings.TrimSpace(f.TotalQty),
		storage.ColTareWeight:       strings.TrimSpace(f.TareWeight),
		storage.ColRemarks:          strings.TrimSpace(f.Remarks),
	}
}

// ListIndents returns every indent matching the filter.
func (s *DispatchService) ListIndents(ctx context.Context, filter models.IndentFilter) ([]models.Indent, error) {
	records, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return plain(repository.Filter(records, filter)), nil
}

// CreateIndent appends a new indent with the next indent number.
func (s *DispatchService) CreateIndent(ctx context.Context, actor Actor, form models.IndentForm) (string, error) {
	if err := validateIndentForm(form); err != nil {
		return "", err
	}
	records, err := s.list(ctx)
	if err != nil {
		return "", err
	}
	indentNo := repository.NextIndentNo(records)

	patch := indentFormPatch(form)
	patch.Set(storage.ColCreatedAt, s.timestamp())
	patch.Set(storage.ColIndentNo, indentNo)

	wctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	if err := s.indents.Insert(wctx, patch.Dense()); err != nil {
		return "", err
	}
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext:   "indent",
		EventName:      "create",
		Description:    fmt.Sprintf("Created indent %s for %s", indentNo, strings.TrimSpace(form.PartyName)),
		SheetName:      s.indents.Sheet(),
		ChangedColumns: patch.Columns(),
	})
	log.Infof("indent %s created by %s", indentNo, actor.UserName)
	return indentNo, nil
}

// UpdateIndent rewrites C..L; the indent number and creation time are kept.
func (s *DispatchService) UpdateIndent(ctx context.Context, actor Actor, rowIndex int, form models.IndentForm) error {
	if err := validateIndentForm(form); err != nil {
		return err
	}
	rec, err := s.get(ctx, rowIndex)
	if err != nil {
		return err
	}
	return s.update(ctx, actor, rowIndex, indentFormPatch(form), models.ActivityEntry{
		EventContext: "indent",
		EventName:    "update",
		Description:  "Updated indent " + rec.IndentNo,
	})
}

func (s *DispatchService) DeleteIndent(ctx context.Context, actor Actor, rowIndex int) error {
	rec, err := s.get(ctx, rowIndex)
	if err != nil {
		return err
	}
	wctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	if err := s.indents.Delete(wctx, rowIndex); err != nil {
		return err
	}
	s.activity.Record(ctx, actor, models.ActivityEntry{
		EventContext: "indent",
		EventName:    "delete",
		Description:  "Deleted indent " + rec.IndentNo,
		SheetName:    s.indents.Sheet(),
		RowIndex:     rowIndex,
	})
	return nil
}

// ---- stage queues ----

// Queue returns the filtered pending/history split of a stage.
func (s *DispatchService) Queue(ctx context.Context, stage repository.Stage, filter models.IndentFilter) (models.StageQueue, error) {
	records, err := s.list(ctx)
	if err != nil {
		return models.StageQueue{}, err
	}
	return repository.Bucket(repository.Filter(records, filter), stage), nil
}

func (s *DispatchService) LoadingPointQueue(ctx context.Context, filter models.IndentFilter) (models.StageQueue, error) {
	return s.Queue(ctx, repository.StageLoadingPoint, filter)
}

func (s *DispatchService) LoadingCompleteQueue(ctx context.Context, filter models.IndentFilter) (models.StageQueue, error) {
	return s.Queue(ctx, repository.StageLoadingComplete, filter)
}

func (s *DispatchService) GatePassQueue(ctx context.Context, filter models.IndentFilter) (models.StageQueue, error) {
	return s.Queue(ctx, repository.StageGatePass, filter)
}

func (s *DispatchService) pending(ctx context.Context, rowIndex int, stage repository.Stage) (*repository.IndentRecord, error) {
	rec, err := s.get(ctx, rowIndex)
	if err != nil {
		return nil, err
	}
	if !stage.IsPending(rec.Row) {
		return nil, fmt.Errorf("indent %s at %s: %w", rec.IndentNo, stage, ErrNotPending)
	}
	return rec, nil
}

// completed returns the indent only once stage has both its timestamps, so
// history edits never touch a row still waiting in the queue.
func (s *DispatchService) completed(ctx context.Context, rowIndex int, stage repository.Stage) (*repository.IndentRecord, error) {
	rec, err := s.get(ctx, rowIndex)
	if err != nil {
		return nil, err
	}
	if !stage.IsDone(rec.Row) {
		return nil, fmt.Errorf("indent %s at %s: %w", rec.IndentNo, stage, ErrNotCompleted)
	}
	return rec, nil
}

// ---- loading point ----

// MarkVehicleReached stamps N and records P for a pending indent.
func (s *DispatchService) MarkVehicleReached(ctx context.Context, actor Actor, rowIndex int, vehicleReached string) error {
	rec, err := s.pending(ctx, rowIndex, repository.StageLoadingPoint)
	if err != nil {
		return err
	}
	if isBlank(vehicleReached) {
		vehicleReached = defaultVehicleReached
	}
	patch := storage.RowPatch{
		storage.ColLoadingPointActual: s.timestamp(),
		storage.ColVehicleReached:     strings.TrimSpace(vehicleReached),
	}
	return s.update(ctx, actor, rowIndex, patch, models.ActivityEntry{
		EventContext: "loading_point",
		EventName:    "vehicle_reached",
		Description:  fmt.Sprintf("Vehicle %s reached loading point for %s", rec.VehicleNo, rec.IndentNo),
	})
}

// EditLoadingPoint rewrites C..L and P.
func (s *DispatchService) EditLoadingPoint(ctx context.Context, actor Actor, rowIndex int, form models.LoadingPointForm) error {
	if err := validateIndentForm(form.IndentForm); err != nil {
		return err
	}
	rec, err := s.completed(ctx, rowIndex, repository.StageLoadingPoint)
	if err != nil {
		return err
	}
	patch := indentFormPatch(form.IndentForm)
	patch.Set(storage.ColVehicleReached, strings.TrimSpace(form.VehicleReached))
	return s.update(ctx, actor, rowIndex, patch, models.ActivityEntry{
		EventContext: "loading_point",
		EventName:    "update",
		Description:  "Updated loading point details of " + rec.IndentNo,
	})
}

// ---- loading complete ----

func (s *DispatchService) loadingPatch(ctx context.Context, form models.LoadingCompleteForm) (storage.RowPatch, error) {
	imageURL, err := s.resolveImage(ctx, form)
	if err != nil {
		return nil, err
	}
	status := strings.TrimSpace(form.LoadingStatus)
	if status == "" {
		status = defaultLoadingStatus
	}
	patch := storage.RowPatch{
		storage.ColMunsiName:         strings.TrimSpace(form.MunsiName),
		storage.ColDriverName:        strings.TrimSpace(form.DriverName),
		storage.ColDriverNumber:      strings.TrimSpace(form.DriverNumber),
		storage.ColSubCommodity1:     strings.TrimSpace(form.SubCommodity1),
		storage.ColPkts1:             strings.TrimSpace(form.Pkts1),
		storage.ColSubCommodity2:     strings.TrimSpace(form.SubCommodity2),
		storage.ColPkts2:             strings.TrimSpace(form.Pkts2),
		storage.ColSubCommodity3:     strings.TrimSpace(form.SubCommodity3),
		storage.ColPkts3:             strings.TrimSpace(form.Pkts3),
		storage.ColTotalPackets:      strconv.Itoa(SumPackets(form.Pkts1, form.Pkts2, form.Pkts3)),
		storage.ColLoadingBhartiSize: strings.TrimSpace(form.LoadingBhartiSize),
		storage.ColLoadingQuantity:   strings.TrimSpace(form.LoadingQuantity),
		storage.ColLoadingPacketType: strings.TrimSpace(form.LoadingPacketType),
		storage.ColVehicleImage:      imageURL,
		storage.ColLoadingStatus:     status,
		storage.ColLoadingPacketName: strings.TrimSpace(form.LoadingPacketName),
	}
	return patch, nil
}

// resolveImage uploads a new photo when one was sent. A plain URL is kept
// as is; no image leaves AG untouched.
func (s *DispatchService) resolveImage(ctx context.Context, form models.LoadingCompleteForm) (string, error) {
	switch {
	case len(form.ImageBytes) > 0:
		if s.images == nil {
			return "", validationError("image uploads are not configured")
		}
		return s.images.UploadVehicleImage(ctx, form.ImageBytes, form.ImageMimeType)
	case IsDataURL(form.VehicleImage):
		if s.images == nil {
			return "", validationError("image uploads are not configured")
		}
		return s.images.UploadDataURL(ctx, form.VehicleImage)
	default:
		return strings.TrimSpace(form.VehicleImage), nil
	}
}

// CompleteLoading stamps R and writes T..AH and BP for a pending indent.
func (s *DispatchService) CompleteLoading(ctx context.Context, actor Actor, rowIndex int, form models.LoadingCompleteForm) error {
	rec, err := s.pending(ctx, rowIndex, repository.StageLoadingComplete)
	if err != nil {
		return err
	}
	patch, err := s.loadingPatch(ctx, form)
	if err != nil {
		return err
	}
	patch.Set(storage.ColLoadingCompleteActual, s.timestamp())
	return s.update(ctx, actor, rowIndex, patch, models.ActivityEntry{
		EventContext: "loading_complete",
		EventName:    "complete",
		Description:  fmt.Sprintf("Completed loading of %s (%s packets)", rec.IndentNo, patch[storage.ColTotalPackets]),
	})
}

// EditLoading rewrites the loading columns of a completed indent; R is
// untouched.
func (s *DispatchService) EditLoading(ctx context.Context, actor Actor, rowIndex int, form models.LoadingCompleteForm) error {
	rec, err := s.completed(ctx, rowIndex, repository.StageLoadingComplete)
	if err != nil {
		return err
	}
	patch, err := s.loadingPatch(ctx, form)
	if err != nil {
		return err
	}
	return s.update(ctx, actor, rowIndex, patch, models.ActivityEntry{
		EventContext: "loading_complete",
		EventName:    "update",
		Description:  "Updated loading details of " + rec.IndentNo,
	})
}

// ---- gate pass ----

func normaliseGatePassType(t string) (string, error) {
	t = strings.TrimSpace(t)
	switch {
	case t == "":
		return GatePassCivilSupply, nil
	case strings.EqualFold(t, GatePassCivilSupply):
		return GatePassCivilSupply, nil
	case strings.EqualFold(t, GatePassNormal):
		return GatePassNormal, nil
	default:
		return "", validationError("unknown gate pass type %q", t)
	}
}

func (s *DispatchService) gatePassPatch(rec *repository.IndentRecord, form models.GatePassForm) (storage.RowPatch, error) {
	gpType, err := normaliseGatePassType(form.GatePassType)
	if err != nil {
		return nil, err
	}
	net, netQuintal := NetWeight(form.LoadingWeight, rec.TareWeight)
	t := strings.TrimSpace

	patch := storage.RowPatch{
		storage.ColGPLoadingWeight:    t(form.LoadingWeight),
		storage.ColGPNetWeight:        net,
		storage.ColGatePassType:       gpType,
		storage.ColGatePassNo:         t(form.GPNumber),
		storage.ColGPDate:             utils.NormaliseDate(form.Date, s.loc),
		storage.ColGPVehicleNumber:    t(form.VehicleNumber),
		storage.ColGPVehicleType:      t(form.VehicleType),
		storage.ColGPTransporter:      t(form.Transporter),
		storage.ColGPAdvance:          t(form.Advance),
		storage.ColGPFreightPerQty:    t(form.FreightPerQty),
		storage.ColGPPump:             t(form.Pump),
		storage.ColGPDiesel:           t(form.Diesel),
		storage.ColGPSubCommodity1:    t(form.SubCommodity1),
		storage.ColGPPkts1:            t(form.Pkts1),
		storage.ColGPSubCommodity2:    t(form.SubCommodity2),
		storage.ColGPPkts2:            t(form.Pkts2),
		storage.ColGPSubCommodity3:    t(form.SubCommodity3),
		storage.ColGPPkts3:            t(form.Pkts3),
		storage.ColGPTotalPackets:     strconv.Itoa(SumPackets(form.Pkts1, form.Pkts2, form.Pkts3)),
		storage.ColGPNetWeightQuintal: netQuintal,
		storage.ColGPDriverName:       t(form.DriverName),
		storage.ColGPDriverNumber:     t(form.DriverNumber),
	}
	if gpType == GatePassCivilSupply {
		patch.Set(storage.ColGPCMRNo, t(form.CMRNo)).
			Set(storage.ColGPLotNo, t(form.LotNo)).
			Set(storage.ColGPKMSYear, t(form.KMSYear))
	} else {
		patch.Set(storage.ColGPRate, t(form.Rate)).
			Set(storage.ColGPBillDetails, t(form.BillDetails)).
			Set(storage.ColGPBillWeight, t(form.BillWeight)).
			Set(storage.ColGPInvoiceNo, t(form.InvoiceNo)).
			Set(storage.ColGPInvoiceValue, t(form.InvoiceValue))
	}
	return patch, nil
}

// IssueGatePass stamps AJ and writes the gate pass columns for a pending
// indent, then notifies by mail when configured.
func (s *DispatchService) IssueGatePass(ctx context.Context, actor Actor, rowIndex int, form models.GatePassForm) error {
	rec, err := s.pending(ctx, rowIndex, repository.StageGatePass)
	if err != nil {
		return err
	}
	patch, err := s.gatePassPatch(rec, form)
	if err != nil {
		return err
	}
	patch.Set(storage.ColGatePassActual, s.timestamp())
	err = s.update(ctx, actor, rowIndex, patch, models.ActivityEntry{
		EventContext: "gate_pass",
		EventName:    "issue",
		Description:  fmt.Sprintf("Issued %s gate pass %s for %s", patch[storage.ColGatePassType], patch[storage.ColGatePassNo], rec.IndentNo),
	})
	if err != nil {
		return err
	}

	issued := applyPatch(rec, patch)
	if err := s.notifier.NotifyGatePass(context.WithoutCancel(ctx), issued); err != nil {
		log.WithError(err).Warnf("gate pass notice for %s not sent", rec.IndentNo)
	}
	return nil
}

// EditGatePass rewrites the gate pass columns of an issued gate pass; AJ is
// untouched.
func (s *DispatchService) EditGatePass(ctx context.Context, actor Actor, rowIndex int, form models.GatePassForm) error {
	rec, err := s.completed(ctx, rowIndex, repository.StageGatePass)
	if err != nil {
		return err
	}
	patch, err := s.gatePassPatch(rec, form)
	if err != nil {
		return err
	}
	return s.update(ctx, actor, rowIndex, patch, models.ActivityEntry{
		EventContext: "gate_pass",
		EventName:    "update",
		Description:  "Updated gate pass of " + rec.IndentNo,
	})
}

// GatePass returns one indent for document rendering.
func (s *DispatchService) GatePass(ctx context.Context, rowIndex int) (models.Indent, error) {
	rec, err := s.get(ctx, rowIndex)
	if err != nil {
		return models.Indent{}, err
	}
	if !rec.Row.Present(storage.ColGatePassActual) {
		return models.Indent{}, fmt.Errorf("indent %s has no gate pass: %w", rec.IndentNo, ErrNotCompleted)
	}
	return rec.Indent, nil
}

// ---- dashboard ----

func (s *DispatchService) Stats(ctx context.Context) (models.DashboardStats, error) {
	ctx, cancel := utils.GetDefaultRequestContext(ctx)
	defer cancel()
	rows, err := s.indents.Rows(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return repository.ComputeStats(rows), nil
}

// applyPatch returns the indent as it reads after patch is written.
func applyPatch(rec *repository.IndentRecord, patch storage.RowPatch) models.Indent {
	row := append(storage.Row(nil), rec.Row...)
	for i, v := range patch {
		for len(row) <= i {
			row = append(row, "")
		}
		if v != "" {
			row[i] = v
		}
	}
	return repository.MapIndent(row, rec.RowIndex-1)
}

func plain(records []repository.IndentRecord) []models.Indent {
	out := make([]models.Indent, len(records))
	for i, r := range records {
		out[i] = r.Indent
	}
	return out
}
