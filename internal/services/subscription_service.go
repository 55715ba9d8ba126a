package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"petromart/internal/infra"
	"petromart/internal/infra/kafka"
	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

type SubscriptionServiceInterface interface {
	Subscribe(ctx context.Context, ownerID string, req request_models.SubscribeRequest) (response_models.SubscriptionResponse, error)
	MySubscription(ctx context.Context, ownerID string) (response_models.SubscriptionResponse, error)

	ListPending(ctx context.Context, page, pageSize int) ([]response_models.SubscriptionResponse, int64, error)
	Approve(ctx context.Context, adminID, subscriptionID string) (response_models.SubscriptionResponse, error)
	Reject(ctx context.Context, adminID, subscriptionID string) error

	// ExpireDue transitions every overdue subscription and cascades the
	// side effects. Called by the periodic sweeper; safe to re-run.
	ExpireDue(ctx context.Context, now int64) (int, error)
}

type SubscriptionService struct {
	subRepo     repositories.ISubscriptionRepository
	planRepo    repositories.IPlanRepository
	storeRepo   repositories.IStoreRepository
	accountRepo repositories.IAccountRepository
	promoRepo   repositories.IPromotionRepository
	auditRepo   repositories.IAuditRepository
	mail        IMailService
	publisher   kafka.EventPublisher
	metrics     *infra.Metrics
	logger      *zap.Logger
}

func NewSubscriptionService(
	subRepo repositories.ISubscriptionRepository,
	planRepo repositories.IPlanRepository,
	storeRepo repositories.IStoreRepository,
	accountRepo repositories.IAccountRepository,
	promoRepo repositories.IPromotionRepository,
	auditRepo repositories.IAuditRepository,
	mail IMailService,
	publisher kafka.EventPublisher,
	metrics *infra.Metrics,
	logger *zap.Logger,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		subRepo:     subRepo,
		planRepo:    planRepo,
		storeRepo:   storeRepo,
		accountRepo: accountRepo,
		promoRepo:   promoRepo,
		auditRepo:   auditRepo,
		mail:        mail,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, ownerID string, req request_models.SubscribeRequest) (response_models.SubscriptionResponse, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrForbidden
	}
	store, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	if store == nil {
		return response_models.SubscriptionResponse{}, utils.RecordNotFound
	}
	if store.Status != db_models.StoreStatusActive {
		return response_models.SubscriptionResponse{}, utils.ErrStoreNotActive
	}

	plan, err := s.planRepo.GetByType(ctx, db_models.PlanType(req.PlanType))
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	if plan == nil || !plan.IsActive {
		return response_models.SubscriptionResponse{}, utils.ErrSubscriptionNotFound
	}

	// One request in flight at a time; a pending row must be approved or
	// rejected before the seller can ask again.
	latest, err := s.subRepo.LatestForStore(ctx, store.ID)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	if latest != nil && latest.Status == db_models.SubStatusPending {
		return response_models.SubscriptionResponse{}, utils.ErrSubscriptionInvalid
	}

	code, err := utils.NewSubscriptionCode(store.ID, utils.FromUnixSeconds(utils.NowUnixSeconds()))
	if err != nil {
		return response_models.SubscriptionResponse{}, err
	}

	sub := &db_models.Subscription{
		StoreID:          store.ID,
		PlanID:           plan.ID,
		SubscriptionCode: code,
		Status:           db_models.SubStatusPending,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	sub.Plan = *plan

	s.publishSubscriptionEvent(sub, "created")
	s.logger.Info("subscription requested",
		zap.String("store_id", store.ID.String()),
		zap.String("subscription_code", code),
		zap.String("plan_type", req.PlanType))

	return s.toSubscriptionResponse(ctx, sub), nil
}

func (s *SubscriptionService) MySubscription(ctx context.Context, ownerID string) (response_models.SubscriptionResponse, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrForbidden
	}
	store, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	if store == nil {
		return response_models.SubscriptionResponse{}, utils.RecordNotFound
	}

	sub, err := s.subRepo.LatestForStore(ctx, store.ID)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	if sub == nil {
		return response_models.SubscriptionResponse{}, utils.ErrSubscriptionNotFound
	}
	return s.toSubscriptionResponse(ctx, sub), nil
}

func (s *SubscriptionService) ListPending(ctx context.Context, page, pageSize int) ([]response_models.SubscriptionResponse, int64, error) {
	subs, total, err := s.subRepo.ListByStatus(ctx, db_models.SubStatusPending, page, pageSize)
	if err != nil {
		return nil, 0, utils.ErrDatabaseError
	}
	out := make([]response_models.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, s.toSubscriptionResponse(ctx, &subs[i]))
	}
	return out, total, nil
}

func (s *SubscriptionService) Approve(ctx context.Context, adminID, subscriptionID string) (response_models.SubscriptionResponse, error) {
	admin, err := parseUUID(adminID)
	if err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrForbidden
	}
	sub, err := s.pendingSubscription(ctx, subscriptionID)
	if err != nil {
		return response_models.SubscriptionResponse{}, err
	}

	now := utils.NowUnixSeconds()
	endsAt := now + int64(sub.Plan.DurationDays)*86400
	if err := s.subRepo.Approve(ctx, sub.ID, now, endsAt, string(sub.Plan.PlanType)); err != nil {
		return response_models.SubscriptionResponse{}, utils.ErrDatabaseError
	}
	sub.Status = db_models.SubStatusActive
	sub.StartsAt = now
	sub.EndsAt = endsAt
	sub.ApprovedAt = &now

	s.audit(ctx, admin, "subscription.approve", sub)
	s.publishSubscriptionEvent(sub, "activated")
	s.notifyOwner(sub.Store.OwnerID, func(email string) error {
		return s.mail.SendSubscriptionApproved(email, sub.Store.Name, sub.Plan.Name, endsAt)
	})

	return s.toSubscriptionResponse(ctx, sub), nil
}

func (s *SubscriptionService) Reject(ctx context.Context, adminID, subscriptionID string) error {
	admin, err := parseUUID(adminID)
	if err != nil {
		return utils.ErrForbidden
	}
	sub, err := s.pendingSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}

	if err := s.subRepo.Reject(ctx, sub.ID); err != nil {
		return utils.ErrDatabaseError
	}
	sub.Status = db_models.SubStatusRejected

	s.audit(ctx, admin, "subscription.reject", sub)
	s.publishSubscriptionEvent(sub, "rejected")
	return nil
}

func (s *SubscriptionService) ExpireDue(ctx context.Context, now int64) (int, error) {
	due, err := s.subRepo.FindExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range due {
		sub := &due[i]
		if err := s.subRepo.ExpireCascade(ctx, sub); err != nil {
			s.logger.Error("subscription expiry cascade failed",
				zap.String("subscription_code", sub.SubscriptionCode),
				zap.Error(err))
			if ctxErr := ctx.Err(); ctxErr != nil {
				return expired, ctxErr
			}
			continue
		}
		expired++
		sub.Status = db_models.SubStatusExpired

		s.publishSubscriptionEvent(sub, "expired")
		s.notifyOwner(sub.Store.OwnerID, func(email string) error {
			return s.mail.SendSubscriptionExpired(email, sub.Store.Name)
		})
	}
	s.metrics.RecordSubscriptionsExpired(expired)
	return expired, nil
}

func (s *SubscriptionService) pendingSubscription(ctx context.Context, subscriptionID string) (*db_models.Subscription, error) {
	id, err := parseUUID(subscriptionID)
	if err != nil {
		return nil, utils.RecordNotFound
	}
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil {
		return nil, utils.ErrSubscriptionNotFound
	}
	if sub.Status != db_models.SubStatusPending {
		return nil, utils.ErrSubscriptionInvalid
	}
	return sub, nil
}

func (s *SubscriptionService) toSubscriptionResponse(ctx context.Context, sub *db_models.Subscription) response_models.SubscriptionResponse {
	resp := response_models.SubscriptionResponse{
		ID:               sub.ID,
		StoreID:          sub.StoreID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         string(sub.Plan.PlanType),
		Status:           string(sub.Status),
		StartsAt:         sub.StartsAt,
		EndsAt:           sub.EndsAt,
	}

	featuredUsed, err := s.promoRepo.CountFeaturedByCode(ctx, sub.SubscriptionCode)
	if err != nil {
		s.logger.Warn("slot count failed", zap.Error(err))
	}
	dealsUsed, err := s.promoRepo.CountHotDealsByCode(ctx, sub.SubscriptionCode)
	if err != nil {
		s.logger.Warn("slot count failed", zap.Error(err))
	}
	resp.FeaturedSlotsUsed = featuredUsed
	resp.FeaturedSlotsRemaining = remainingSlots(sub.Plan.MaxFeaturedSlots, featuredUsed)
	resp.HotDealSlotsUsed = dealsUsed
	resp.HotDealSlotsRemaining = remainingSlots(sub.Plan.MaxHotDealSlots, dealsUsed)
	return resp
}

func remainingSlots(max int, used int64) int {
	remaining := max - int(used)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *SubscriptionService) audit(ctx context.Context, actorID uuid.UUID, action string, sub *db_models.Subscription) {
	meta, _ := json.Marshal(map[string]string{
		"subscription_code": sub.SubscriptionCode,
		"store_id":          sub.StoreID.String(),
		"plan_type":         string(sub.Plan.PlanType),
	})
	entry := &db_models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: "subscription",
		EntityID:   sub.ID.String(),
		Metadata:   datatypes.JSON(meta),
	}
	if err := s.auditRepo.Record(ctx, entry); err != nil {
		s.logger.Error("audit write failed", zap.String("action", action), zap.Error(err))
	}
}

func (s *SubscriptionService) publishSubscriptionEvent(sub *db_models.Subscription, transition string) {
	err := s.publisher.PublishSubscription(kafka.SubscriptionEvent{
		SubscriptionID:   sub.ID.String(),
		StoreID:          sub.StoreID.String(),
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         string(sub.Plan.PlanType),
		Transition:       transition,
		At:               utils.NowUnixSeconds(),
	})
	if err != nil {
		s.logger.Warn("subscription event publish failed",
			zap.String("transition", transition), zap.Error(err))
	}
}

// notifyOwner sends mail off the request path; a mail outage must not fail
// the state change that triggered it.
func (s *SubscriptionService) notifyOwner(ownerID uuid.UUID, send func(email string) error) {
	go func() {
		account, err := s.accountRepo.GetByID(context.Background(), ownerID)
		if err != nil || account == nil {
			return
		}
		if err := send(account.Email); err != nil {
			s.logger.Warn("notification mail failed", zap.Error(err))
		}
	}()
}
