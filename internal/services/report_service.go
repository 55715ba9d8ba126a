package services

import (
	"context"

	"go.uber.org/zap"

	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

type ReportServiceInterface interface {
	ReportStore(ctx context.Context, reporterID string, req request_models.ReportStoreRequest) (response_models.StoreReportResponse, error)
	ListOpenReports(ctx context.Context, page, pageSize int) ([]response_models.StoreReportResponse, int64, error)
	ResolveReport(ctx context.Context, adminID, reportID string, req request_models.ResolveReportRequest) error
}

type ReportService struct {
	reportRepo repositories.IReportRepository
	storeRepo  repositories.IStoreRepository
	auditRepo  repositories.IAuditRepository
	logger     *zap.Logger
}

func NewReportService(
	reportRepo repositories.IReportRepository,
	storeRepo repositories.IStoreRepository,
	auditRepo repositories.IAuditRepository,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		reportRepo: reportRepo,
		storeRepo:  storeRepo,
		auditRepo:  auditRepo,
		logger:     logger,
	}
}

func (s *ReportService) ReportStore(ctx context.Context, reporterID string, req request_models.ReportStoreRequest) (response_models.StoreReportResponse, error) {
	reporter, err := parseUUID(reporterID)
	if err != nil {
		return response_models.StoreReportResponse{}, utils.ErrForbidden
	}
	storeID, err := parseUUID(req.StoreID)
	if err != nil {
		return response_models.StoreReportResponse{}, utils.RecordNotFound
	}
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return response_models.StoreReportResponse{}, utils.ErrDatabaseError
	}
	if store == nil {
		return response_models.StoreReportResponse{}, utils.RecordNotFound
	}

	report := &db_models.StoreReport{
		StoreID:    storeID,
		ReporterID: reporter,
		Reason:     req.Reason,
		Details:    req.Details,
		Status:     db_models.ReportStatusOpen,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return response_models.StoreReportResponse{}, utils.ErrDatabaseError
	}

	resp := toReportResponse(report)
	resp.StoreName = store.Name
	return resp, nil
}

func (s *ReportService) ListOpenReports(ctx context.Context, page, pageSize int) ([]response_models.StoreReportResponse, int64, error) {
	reports, total, err := s.reportRepo.ListByStatus(ctx, db_models.ReportStatusOpen, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	out := make([]response_models.StoreReportResponse, 0, len(reports))
	for i := range reports {
		resp := toReportResponse(&reports[i])
		resp.StoreName = reports[i].Store.Name
		out = append(out, resp)
	}
	return out, total, nil
}

func (s *ReportService) ResolveReport(ctx context.Context, adminID, reportID string, req request_models.ResolveReportRequest) error {
	admin, err := parseUUID(adminID)
	if err != nil {
		return utils.ErrForbidden
	}
	id, err := parseUUID(reportID)
	if err != nil {
		return utils.RecordNotFound
	}
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if report == nil {
		return utils.RecordNotFound
	}
	if report.Status != db_models.ReportStatusOpen {
		return utils.ErrForbidden
	}

	now := utils.NowUnixSeconds()
	status := db_models.ReportStatus(req.Status)
	if err := s.reportRepo.Resolve(ctx, id, status, req.Resolution, now); err != nil {
		return utils.ErrDatabaseError
	}

	entry := &db_models.AuditLog{
		ActorID:    admin,
		Action:     "report.resolve",
		EntityType: "store_report",
		EntityID:   report.ID.String(),
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.logger.Error("audit write failed", zap.String("action", "report.resolve"), zap.Error(err))
	}
	return nil
}

func toReportResponse(report *db_models.StoreReport) response_models.StoreReportResponse {
	return response_models.StoreReportResponse{
		ID:         report.ID,
		StoreID:    report.StoreID,
		Reason:     report.Reason,
		Details:    report.Details,
		Status:     string(report.Status),
		Resolution: report.Resolution,
	}
}
