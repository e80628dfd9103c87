package serviceImp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fieldwatch/entities"
	alertImp "fieldwatch/pkg/alert/repositoryImp"
	"fieldwatch/pkg/analysis"
	"fieldwatch/pkg/apperr"
	fieldsvc "fieldwatch/pkg/field/service"
	repo "fieldwatch/pkg/imagery/repository"
	imageImp "fieldwatch/pkg/imagery/repositoryImp"
	"fieldwatch/pkg/imagery/service"
	jobsvc "fieldwatch/pkg/job/service"
	"fieldwatch/pkg/metrics"
	"fieldwatch/pkg/storage"
)

type Options struct {
	MaxSide       int
	DecodeTimeout time.Duration
}

// Deps wires the service. DB backs the transaction that writes an image
// together with its stress alert; Images serves reads.
type Deps struct {
	DB      *gorm.DB
	Images  repo.ImageRepository
	Fields  fieldsvc.FieldService
	Jobs    jobsvc.JobService
	Store   storage.ObjectStore
	Metrics *metrics.AnalysisMetrics
	Log     *zap.Logger
}

type imagerySvc struct {
	Deps
	opt Options
	now func() time.Time
}

func NewImageryService(d Deps, opt Options) service.ImageryService {
	if opt.MaxSide <= 0 {
		opt.MaxSide = analysis.DefaultMaxSide
	}
	if opt.DecodeTimeout <= 0 {
		opt.DecodeTimeout = 10 * time.Second
	}
	d.Log = d.Log.Named("imagery")
	return &imagerySvc{Deps: d, opt: opt, now: time.Now}
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func (s *imagerySvc) AddWithAnalysis(ctx context.Context, uid string, in service.IndexUpload) (*service.IngestResult, error) {
	if _, err := s.Fields.Owned(ctx, uid, in.FieldID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Filename) == "" {
		return nil, apperr.Invalid("filename is required")
	}
	key := in.ObjectKey
	if key == "" {
		key = in.Filename
	}
	img := &entities.Image{
		FieldID:          in.FieldID,
		UploadedBy:       uid,
		Filename:         in.Filename,
		ObjectKey:        key,
		FileSize:         in.FileSize,
		CaptureDate:      s.now(),
		ProcessingStatus: entities.JobCompleted,
		NDVI:             in.NDVIApprox,
		Dryness:          in.Dryness,
	}
	ndvi, dry := deref(in.NDVIApprox), deref(in.Dryness)
	dec := analysis.EvaluateStress(ndvi, dry)

	var alert *entities.Alert
	if dec.Raise {
		alert = &entities.Alert{
			FieldID:      in.FieldID,
			UserID:       uid,
			Severity:     entities.AlertSeverity(dec.Severity),
			Type:         entities.AlertDiseaseDetected,
			Title:        analysis.StressAlertTitle,
			Description:  analysis.StressAlertDescription,
			Confidence:   &dec.Confidence,
			AffectedArea: &dec.AffectedArea,
		}
	}

	// The image row and its alert land together or not at all.
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := imageImp.New(tx).Create(ctx, img); err != nil {
			return fmt.Errorf("create image: %w", err)
		}
		if alert == nil {
			return nil
		}
		if err := alertImp.New(tx).Create(ctx, alert); err != nil {
			return fmt.Errorf("raise stress alert: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &service.IngestResult{ImageID: img.ImageID, NDVI: ndvi, Dryness: dry}
	if alert != nil {
		s.Metrics.ObserveAlert(dec.Severity)
		s.Log.Info("alert raised",
			zap.Uint("alert_id", alert.AlertID),
			zap.Uint("field_id", alert.FieldID),
			zap.String("severity", string(alert.Severity)))
		out.AlertID = &alert.AlertID
	}
	return out, nil
}

func (s *imagerySvc) decode(ctx context.Context, body []byte) (analysis.PixelBuffer, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opt.DecodeTimeout)
	defer cancel()
	buf, format, err := analysis.Decode(ctx, bytes.NewReader(body), s.opt.MaxSide)
	if err != nil {
		s.Metrics.ObserveDecodeFailure()
		if ctx.Err() != nil {
			return buf, "", err
		}
		return buf, "", apperr.Invalid("%v", err)
	}
	return buf, format, nil
}

func (s *imagerySvc) Analyze(ctx context.Context, uid string, in service.ImageUpload) (*service.AnalysisResult, error) {
	if len(in.Body) == 0 {
		return nil, apperr.Invalid("image is empty")
	}
	if in.FieldID == nil {
		buf, format, err := s.decode(ctx, in.Body)
		if err != nil {
			return nil, err
		}
		res, err := analysis.Classify(buf)
		if err != nil {
			return nil, err
		}
		s.Metrics.ObserveClassification(string(res.HealthCondition))
		return &service.AnalysisResult{Analysis: res, Format: format, Width: buf.Width, Height: buf.Height}, nil
	}
	return s.analyzeForField(ctx, uid, *in.FieldID, in)
}

func (s *imagerySvc) analyzeForField(ctx context.Context, uid string, fieldID uint, in service.ImageUpload) (*service.AnalysisResult, error) {
	if _, err := s.Fields.Owned(ctx, uid, fieldID); err != nil {
		return nil, err
	}
	job, err := s.Jobs.Create(ctx, uid, jobsvc.JobInput{JobType: entities.JobImageProcessing, FieldID: &fieldID})
	if err != nil {
		return nil, err
	}
	log := s.Log.With(zap.Uint("job_id", job.JobID), zap.Uint("field_id", fieldID))

	step := func(progress float64, line string) {
		st := entities.JobProcessing
		if _, err := s.Jobs.UpdateProgress(ctx, uid, job.JobID, jobsvc.JobPatch{
			Status: &st, Progress: &progress, Logs: []string{line},
		}); err != nil {
			log.Warn("job progress not recorded", zap.Error(err))
		}
	}
	fail := func(cause error) error {
		st, msg := entities.JobFailed, cause.Error()
		if _, err := s.Jobs.UpdateProgress(ctx, uid, job.JobID, jobsvc.JobPatch{
			Status: &st, ErrorMessage: &msg, Logs: []string{"failed: " + msg},
		}); err != nil {
			log.Warn("job failure not recorded", zap.Error(err))
		}
		return cause
	}

	step(10, fmt.Sprintf("received %s (%d bytes)", in.Filename, len(in.Body)))

	buf, format, err := s.decode(ctx, in.Body)
	if err != nil {
		return nil, fail(err)
	}
	res, err := analysis.Classify(buf)
	if err != nil {
		return nil, fail(err)
	}
	s.Metrics.ObserveClassification(string(res.HealthCondition))
	step(30, fmt.Sprintf("classified %dx%d %s: %s", buf.Width, buf.Height, format, res.HealthCondition))

	key := storage.Key(storage.Buckets.Images, uuid.NewString()+strings.ToLower(filepath.Ext(in.Filename)))
	if err := s.Store.Put(ctx, key, contentType(in.Filename), in.Body); err != nil {
		return nil, fail(fmt.Errorf("store image: %w", err))
	}
	step(70, "stored as "+key)

	ndvi, dry := analysis.RoundIndex(res.GreenRatio), analysis.RoundIndex(res.DryRatio)
	ing, err := s.AddWithAnalysis(ctx, uid, service.IndexUpload{
		FieldID:    fieldID,
		Filename:   in.Filename,
		FileSize:   int64(len(in.Body)),
		NDVIApprox: &ndvi,
		Dryness:    &dry,
		ObjectKey:  key,
	})
	if err != nil {
		return nil, fail(err)
	}

	done, full := entities.JobCompleted, 100.0
	if _, err := s.Jobs.UpdateProgress(ctx, uid, job.JobID, jobsvc.JobPatch{
		Status: &done, Progress: &full, ResultKey: &key, ImageID: &ing.ImageID,
		Logs: []string{fmt.Sprintf("indices ndvi=%.3f dryness=%.3f", ndvi, dry)},
	}); err != nil {
		return nil, err
	}
	log.Info("image analysed",
		zap.String("health", string(res.HealthCondition)),
		zap.Bool("alert", ing.AlertID != nil))

	return &service.AnalysisResult{
		Analysis: res, Format: format, Width: buf.Width, Height: buf.Height,
		JobID: &job.JobID, Image: ing,
	}, nil
}

func (s *imagerySvc) ListForField(ctx context.Context, uid string, fieldID uint) ([]entities.Image, error) {
	if _, err := s.Fields.Owned(ctx, uid, fieldID); err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) || errors.Is(err, apperr.ErrNotFoundOrForbidden) {
			return []entities.Image{}, nil
		}
		return nil, err
	}
	out, err := s.Images.ListByField(ctx, fieldID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return out, nil
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	}
	return "application/octet-stream"
}
