package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fieldwatch/entities"
	alertsvc "fieldwatch/pkg/alert/service"
	"fieldwatch/pkg/apperr"
	fieldsvc "fieldwatch/pkg/field/service"
	jobsvc "fieldwatch/pkg/job/service"
	repo "fieldwatch/pkg/report/repository"
	"fieldwatch/pkg/report/service"
	sensorrepo "fieldwatch/pkg/sensor/repository"
	sensorsvc "fieldwatch/pkg/sensor/service"
	"fieldwatch/pkg/storage"
)

const defaultRange = 30 * 24 * time.Hour

var contentTypes = map[entities.ReportFormat]string{
	entities.FormatCSV:  "text/csv",
	entities.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type Deps struct {
	Reports repo.ReportRepository
	Fields  fieldsvc.FieldService
	Sensors sensorsvc.SensorService
	Alerts  alertsvc.AlertService
	Jobs    jobsvc.JobService
	Store   storage.ObjectStore
	Log     *zap.Logger
}

type reportSvc struct {
	Deps
	now func() time.Time
}

func NewReportService(d Deps) service.ReportService {
	d.Log = d.Log.Named("report")
	return &reportSvc{Deps: d, now: time.Now}
}

func (s *reportSvc) Generate(ctx context.Context, uid string, req service.ReportRequest) (*entities.Report, error) {
	if req.ReportType == "" {
		req.ReportType = entities.ReportFieldHealth
	}
	if !req.ReportType.Valid() {
		return nil, apperr.Invalid("unknown report type %q", req.ReportType)
	}
	if req.Format == "" {
		req.Format = entities.FormatCSV
	}
	if _, ok := contentTypes[req.Format]; !ok {
		return nil, apperr.Invalid("unknown report format %q", req.Format)
	}
	end := s.now()
	if req.End != nil {
		end = *req.End
	}
	start := end.Add(-defaultRange)
	if req.Start != nil {
		start = *req.Start
	}
	if start.After(end) {
		return nil, apperr.Invalid("start must not be after end")
	}

	field, err := s.Fields.Owned(ctx, uid, req.FieldID)
	if err != nil {
		return nil, err
	}
	job, err := s.Jobs.Create(ctx, uid, jobsvc.JobInput{JobType: entities.JobReportGeneration, FieldID: &req.FieldID})
	if err != nil {
		return nil, err
	}
	fail := func(cause error) error {
		st, msg := entities.JobFailed, cause.Error()
		if _, err := s.Jobs.UpdateProgress(ctx, uid, job.JobID, jobsvc.JobPatch{Status: &st, ErrorMessage: &msg}); err != nil {
			s.Log.Warn("job failure not recorded", zap.Uint("job_id", job.JobID), zap.Error(err))
		}
		return cause
	}

	readings, err := s.Sensors.Query(ctx, uid, sensorrepo.ReadingQuery{FieldID: req.FieldID, Start: &start, End: &end})
	if err != nil {
		return nil, fail(err)
	}
	all, err := s.Alerts.ListForField(ctx, uid, req.FieldID)
	if err != nil {
		return nil, fail(err)
	}
	alerts := make([]entities.Alert, 0, len(all))
	for _, a := range all {
		if !a.CreatedAt.Before(start) && !a.CreatedAt.After(end) {
			alerts = append(alerts, a)
		}
	}

	data := reportData{Field: field, Start: start, End: end, Readings: readings, Alerts: alerts}
	var body []byte
	switch req.Format {
	case entities.FormatXLSX:
		body, err = renderXLSX(data)
	default:
		body, err = renderCSV(data)
	}
	if err != nil {
		return nil, fail(fmt.Errorf("render report: %w", err))
	}

	key := storage.Key(storage.Buckets.Reports, uuid.NewString()+"."+string(req.Format))
	if err := s.Store.Put(ctx, key, contentTypes[req.Format], body); err != nil {
		return nil, fail(fmt.Errorf("store report: %w", err))
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = fmt.Sprintf("%s %s %s", field.Name, req.ReportType, end.Format("2006-01-02"))
	}
	rep := &entities.Report{
		UserID:      uid,
		FieldID:     req.FieldID,
		Title:       title,
		ReportType:  req.ReportType,
		RangeStart:  start,
		RangeEnd:    end,
		ObjectKey:   key,
		Format:      req.Format,
		SizeBytes:   int64(len(body)),
		GeneratedAt: s.now(),
	}
	if err := s.Reports.Create(ctx, rep); err != nil {
		return nil, fail(fmt.Errorf("create report: %w", err))
	}

	done, full := entities.JobCompleted, 100.0
	if _, err := s.Jobs.UpdateProgress(ctx, uid, job.JobID, jobsvc.JobPatch{
		Status: &done, Progress: &full, ResultKey: &key,
		Logs: []string{fmt.Sprintf("%d readings, %d alerts, %d bytes", len(readings), len(alerts), len(body))},
	}); err != nil {
		return nil, err
	}
	s.Log.Info("report generated", zap.Uint("report_id", rep.ReportID), zap.String("key", key))
	return rep, nil
}

func (s *reportSvc) List(ctx context.Context, uid string) ([]entities.Report, error) {
	if uid == "" {
		return []entities.Report{}, nil
	}
	out, err := s.Reports.ListByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return out, nil
}

func (s *reportSvc) Download(ctx context.Context, uid string, id uint) (*service.Document, error) {
	if uid == "" {
		return nil, apperr.ErrUnauthenticated
	}
	rep, err := s.Reports.FindByID(ctx, id, uid)
	if err != nil {
		return nil, apperr.FromLookup(err)
	}
	body, err := s.Store.Get(ctx, rep.ObjectKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, err
	}
	return &service.Document{
		Report:      rep,
		ContentType: contentTypes[rep.Format],
		Filename:    fmt.Sprintf("report-%d.%s", rep.ReportID, rep.Format),
		Body:        body,
	}, nil
}
