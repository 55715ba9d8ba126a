package services

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petromart/internal/infra"
	"petromart/internal/infra/kafka"
	"petromart/internal/models/db_models"
	"petromart/internal/models/request_models"
	"petromart/internal/models/response_models"
	"petromart/internal/repositories"
	"petromart/pkg/utils"
)

// DelayScheduler runs a task at a point in time. Satisfied by the in-process
// delay queue; promotions use it for single-row expiry at the exact deadline
// so the periodic sweep is only a safety net.
type DelayScheduler interface {
	Schedule(at time.Time, task func(ctx context.Context))
}

type PromotionServiceInterface interface {
	FeatureProduct(ctx context.Context, ownerID string, req request_models.FeatureProductRequest) (response_models.FeaturedProductResponse, error)
	CreateHotDeal(ctx context.Context, ownerID string, req request_models.CreateHotDealRequest) (response_models.HotDealResponse, error)
	MyPromotions(ctx context.Context, ownerID string) (response_models.StorePromotionsResponse, error)

	PublicFeatured(ctx context.Context, limit int) ([]response_models.FeaturedProductResponse, error)
	PublicHotDeals(ctx context.Context, limit int) ([]response_models.HotDealResponse, error)

	ExpireFeaturedByID(ctx context.Context, id uuid.UUID, source string) (bool, error)
	ExpireHotDealByID(ctx context.Context, id uuid.UUID, source string) (bool, error)

	SweepFeatured(ctx context.Context, now int64) (int64, error)
	SweepHotDeals(ctx context.Context, now int64) (int64, error)
}

type PromotionService struct {
	promoRepo   repositories.IPromotionRepository
	subRepo     repositories.ISubscriptionRepository
	storeRepo   repositories.IStoreRepository
	productRepo repositories.IProductRepository
	planRepo    repositories.IPlanRepository
	accountRepo repositories.IAccountRepository
	mail        IMailService
	publisher   kafka.EventPublisher
	metrics     *infra.Metrics
	scheduler   DelayScheduler
	logger      *zap.Logger

	// Serializes slot checks per subscription code. The postgres row lock
	// covers multi-instance deployments; this covers dialects without
	// FOR UPDATE and keeps single-instance contention off the database.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewPromotionService(
	promoRepo repositories.IPromotionRepository,
	subRepo repositories.ISubscriptionRepository,
	storeRepo repositories.IStoreRepository,
	productRepo repositories.IProductRepository,
	planRepo repositories.IPlanRepository,
	accountRepo repositories.IAccountRepository,
	mail IMailService,
	publisher kafka.EventPublisher,
	metrics *infra.Metrics,
	scheduler DelayScheduler,
	logger *zap.Logger,
) PromotionServiceInterface {
	return &PromotionService{
		promoRepo:   promoRepo,
		subRepo:     subRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		planRepo:    planRepo,
		accountRepo: accountRepo,
		mail:        mail,
		publisher:   publisher,
		metrics:     metrics,
		scheduler:   scheduler,
		logger:      logger,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *PromotionService) codeLock(code string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[code] = lock
	}
	return lock
}

func (s *PromotionService) FeatureProduct(ctx context.Context, ownerID string, req request_models.FeatureProductRequest) (response_models.FeaturedProductResponse, error) {
	store, sub, err := s.promotableStore(ctx, ownerID)
	if err != nil {
		return response_models.FeaturedProductResponse{}, err
	}
	if sub == nil {
		return response_models.FeaturedProductResponse{}, s.rejectWithoutSubscription("featured")
	}
	product, err := s.promotableProduct(ctx, store.ID, req.ProductID)
	if err != nil {
		return response_models.FeaturedProductResponse{}, err
	}

	maxSlots := sub.Plan.MaxFeaturedSlots
	now := utils.NowUnixSeconds()
	fp := &db_models.FeaturedProduct{
		ProductID:        product.ID,
		StoreID:          store.ID,
		SubscriptionCode: sub.SubscriptionCode,
		PlanType:         sub.Plan.PlanType,
		FeaturedAt:       now,
		StartTime:        utils.Int64Ptr(now),
		IsActive:         true,
	}
	if finish := featuredFinishTime(now, sub.Plan.DurationDays, sub.EndsAt); finish > 0 {
		fp.FinishTime = utils.Int64Ptr(finish)
	}

	lock := s.codeLock(sub.SubscriptionCode)
	lock.Lock()
	remaining, err := s.promoRepo.CreateFeaturedWithLimit(ctx, fp, sub.ID, maxSlots)
	lock.Unlock()
	if err != nil {
		if errors.Is(err, utils.ErrSlotLimitReached) {
			s.metrics.RecordPromotionRejected("featured", string(sub.Plan.PlanType))
			return response_models.FeaturedProductResponse{}, &utils.SlotLimitError{
				PromotionType: "featured",
				MaxSlots:      maxSlots,
				Remaining:     0,
			}
		}
		return response_models.FeaturedProductResponse{}, utils.ErrDatabaseError
	}

	s.metrics.RecordPromotionCreated("featured", string(sub.Plan.PlanType))
	s.publishPromotionEvent("featured", fp.ID, fp.ProductID, fp.StoreID, fp.SubscriptionCode, string(fp.PlanType), "created")
	if fp.FinishTime != nil {
		s.scheduleFeaturedExpiry(fp.ID, *fp.FinishTime)
	}
	s.logger.Info("product featured",
		zap.String("product_id", product.ID.String()),
		zap.String("subscription_code", sub.SubscriptionCode),
		zap.Int("remaining_slots", remaining))

	resp := toFeaturedResponse(fp, remaining)
	resp.ProductName = product.Name
	return resp, nil
}

func (s *PromotionService) CreateHotDeal(ctx context.Context, ownerID string, req request_models.CreateHotDealRequest) (response_models.HotDealResponse, error) {
	store, sub, err := s.promotableStore(ctx, ownerID)
	if err != nil {
		return response_models.HotDealResponse{}, err
	}
	if sub == nil {
		return response_models.HotDealResponse{}, s.rejectWithoutSubscription("hot_deal")
	}
	product, err := s.promotableProduct(ctx, store.ID, req.ProductID)
	if err != nil {
		return response_models.HotDealResponse{}, err
	}

	now := utils.NowUnixSeconds()
	if req.DealEndAt <= req.DealStartAt || req.DealEndAt <= now {
		return response_models.HotDealResponse{}, utils.ErrInvalidDealWindow
	}
	if req.DealPrice >= product.PriceMinor {
		return response_models.HotDealResponse{}, utils.ErrInvalidDealPrice
	}

	maxSlots := sub.Plan.MaxHotDealSlots
	discount := float64(product.PriceMinor-req.DealPrice) / float64(product.PriceMinor) * 100
	deal := &db_models.HotDeal{
		ProductID:          product.ID,
		StoreID:            store.ID,
		SubscriptionCode:   sub.SubscriptionCode,
		PlanType:           sub.Plan.PlanType,
		OriginalPrice:      product.PriceMinor,
		DealPrice:          req.DealPrice,
		DiscountPercentage: math.Round(discount*100) / 100,
		DealStartAt:        req.DealStartAt,
		DealEndAt:          req.DealEndAt,
		IsActive:           true,
		ActivatedAt:        now,
	}

	lock := s.codeLock(sub.SubscriptionCode)
	lock.Lock()
	remaining, err := s.promoRepo.CreateHotDealWithLimit(ctx, deal, sub.ID, maxSlots)
	lock.Unlock()
	if err != nil {
		if errors.Is(err, utils.ErrSlotLimitReached) {
			s.metrics.RecordPromotionRejected("hot_deal", string(sub.Plan.PlanType))
			return response_models.HotDealResponse{}, &utils.SlotLimitError{
				PromotionType: "hot_deal",
				MaxSlots:      maxSlots,
				Remaining:     0,
			}
		}
		return response_models.HotDealResponse{}, utils.ErrDatabaseError
	}

	s.metrics.RecordPromotionCreated("hot_deal", string(sub.Plan.PlanType))
	s.publishPromotionEvent("hot_deal", deal.ID, deal.ProductID, deal.StoreID, deal.SubscriptionCode, string(deal.PlanType), "created")
	s.scheduleHotDealExpiry(deal.ID, deal.DealEndAt)

	resp := toHotDealResponse(deal, now, remaining)
	resp.ProductName = product.Name
	return resp, nil
}

func (s *PromotionService) MyPromotions(ctx context.Context, ownerID string) (response_models.StorePromotionsResponse, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return response_models.StorePromotionsResponse{}, utils.ErrForbidden
	}
	store, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return response_models.StorePromotionsResponse{}, utils.ErrDatabaseError
	}
	if store == nil {
		return response_models.StorePromotionsResponse{}, utils.RecordNotFound
	}

	featured, err := s.promoRepo.ListFeaturedByStore(ctx, store.ID)
	if err != nil {
		return response_models.StorePromotionsResponse{}, utils.ErrDatabaseError
	}
	deals, err := s.promoRepo.ListHotDealsByStore(ctx, store.ID)
	if err != nil {
		return response_models.StorePromotionsResponse{}, utils.ErrDatabaseError
	}

	now := utils.NowUnixSeconds()
	resp := response_models.StorePromotionsResponse{
		Featured: make([]response_models.FeaturedProductResponse, 0, len(featured)),
		HotDeals: make([]response_models.HotDealResponse, 0, len(deals)),
	}
	for i := range featured {
		item := toFeaturedResponse(&featured[i], 0)
		item.ProductName = featured[i].Product.Name
		resp.Featured = append(resp.Featured, item)
	}
	for i := range deals {
		item := toHotDealResponse(&deals[i], now, 0)
		item.ProductName = deals[i].Product.Name
		resp.HotDeals = append(resp.HotDeals, item)
	}

	sub, err := s.subRepo.CurrentActiveForStore(ctx, store.ID)
	if err != nil {
		return response_models.StorePromotionsResponse{}, utils.ErrDatabaseError
	}
	if sub != nil {
		featuredUsed, _ := s.promoRepo.CountFeaturedByCode(ctx, sub.SubscriptionCode)
		dealsUsed, _ := s.promoRepo.CountHotDealsByCode(ctx, sub.SubscriptionCode)
		resp.FeaturedSlotsRemaining = remainingSlots(sub.Plan.MaxFeaturedSlots, featuredUsed)
		resp.HotDealSlotsRemaining = remainingSlots(sub.Plan.MaxHotDealSlots, dealsUsed)
	}
	return resp, nil
}

func (s *PromotionService) PublicFeatured(ctx context.Context, limit int) ([]response_models.FeaturedProductResponse, error) {
	featured, err := s.promoRepo.ListActiveFeatured(ctx, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.FeaturedProductResponse, 0, len(featured))
	for i := range featured {
		item := toFeaturedResponse(&featured[i], 0)
		item.ProductName = featured[i].Product.Name
		out = append(out, item)
	}
	return out, nil
}

func (s *PromotionService) PublicHotDeals(ctx context.Context, limit int) ([]response_models.HotDealResponse, error) {
	now := utils.NowUnixSeconds()
	deals, err := s.promoRepo.ListCurrentHotDeals(ctx, now, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	out := make([]response_models.HotDealResponse, 0, len(deals))
	for i := range deals {
		item := toHotDealResponse(&deals[i], now, 0)
		item.ProductName = deals[i].Product.Name
		out = append(out, item)
	}
	return out, nil
}

// ExpireFeaturedByID rotates out a single placement. The delayed task and
// the sweep can both reach the same row; the conditional update makes the
// second arrival a no-op.
func (s *PromotionService) ExpireFeaturedByID(ctx context.Context, id uuid.UUID, source string) (bool, error) {
	fp, err := s.promoRepo.GetFeaturedByID(ctx, id)
	if err != nil {
		return false, err
	}
	if fp == nil || !fp.IsActive {
		return false, nil
	}

	now := utils.NowUnixSeconds()
	flipped, err := s.promoRepo.DeactivateFeaturedByID(ctx, id, now)
	if err != nil || !flipped {
		return false, err
	}

	s.metrics.RecordPromotionExpired("featured", source, 1)
	s.publishPromotionEvent("featured", fp.ID, fp.ProductID, fp.StoreID, fp.SubscriptionCode, string(fp.PlanType), "expired")
	s.notifyPromotionExpired(fp.StoreID, fp.ProductID, "featured")
	return true, nil
}

func (s *PromotionService) ExpireHotDealByID(ctx context.Context, id uuid.UUID, source string) (bool, error) {
	deal, err := s.promoRepo.GetHotDealByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deal == nil || !deal.IsActive {
		return false, nil
	}

	now := utils.NowUnixSeconds()
	flipped, err := s.promoRepo.DeactivateHotDealByID(ctx, id, now)
	if err != nil || !flipped {
		return false, err
	}

	s.metrics.RecordPromotionExpired("hot_deal", source, 1)
	s.publishPromotionEvent("hot_deal", deal.ID, deal.ProductID, deal.StoreID, deal.SubscriptionCode, string(deal.PlanType), "expired")
	s.notifyPromotionExpired(deal.StoreID, deal.ProductID, "hot_deal")
	return true, nil
}

// SweepFeatured rotates out every placement past its finish time. Rows
// without a stored finish time fall back to the current plan duration; a row
// whose plan cannot be resolved is rotated out immediately rather than left
// featured forever.
func (s *PromotionService) SweepFeatured(ctx context.Context, now int64) (int64, error) {
	active, err := s.promoRepo.FindActiveFeatured(ctx)
	if err != nil {
		return 0, err
	}
	if len(active) == 0 {
		return 0, nil
	}

	durations, err := s.planDurations(ctx)
	if err != nil {
		return 0, err
	}

	var due []uuid.UUID
	for i := range active {
		fp := &active[i]
		if featuredExpiryAt(fp, durations) <= now {
			due = append(due, fp.ID)
		}
	}

	count, err := s.promoRepo.DeactivateFeatured(ctx, due, now)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordPromotionExpired("featured", "sweep", count)
	return count, nil
}

func (s *PromotionService) SweepHotDeals(ctx context.Context, now int64) (int64, error) {
	count, err := s.promoRepo.DeactivateExpiredHotDeals(ctx, now)
	if err != nil {
		return 0, err
	}
	s.metrics.RecordPromotionExpired("hot_deal", "sweep", count)
	return count, nil
}

func (s *PromotionService) planDurations(ctx context.Context) (map[db_models.PlanType]int, error) {
	plans, err := s.planRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}
	durations := make(map[db_models.PlanType]int, len(plans))
	for i := range plans {
		durations[plans[i].PlanType] = plans[i].DurationDays
	}
	return durations, nil
}

// featuredExpiryAt resolves when a placement stops being shown. A plan that
// no longer grants any featured days expires the row immediately, even when
// an older finish time snapshot exists; otherwise the snapshot wins, then
// the plan duration from the creation timestamp.
func featuredExpiryAt(fp *db_models.FeaturedProduct, durations map[db_models.PlanType]int) int64 {
	days, ok := durations[fp.PlanType]
	if !ok || days <= 0 {
		return 0
	}
	if fp.FinishTime != nil {
		return *fp.FinishTime
	}
	return fp.FeaturedAt + int64(days)*86400
}

func featuredFinishTime(now int64, durationDays int, subEndsAt int64) int64 {
	if durationDays <= 0 {
		return now
	}
	finish := now + int64(durationDays)*86400
	if subEndsAt > 0 && subEndsAt < finish {
		return subEndsAt
	}
	return finish
}

func (s *PromotionService) scheduleFeaturedExpiry(id uuid.UUID, at int64) {
	if s.scheduler == nil {
		return
	}
	s.scheduler.Schedule(utils.FromUnixSeconds(at), func(ctx context.Context) {
		if _, err := s.ExpireFeaturedByID(ctx, id, "delay"); err != nil {
			s.logger.Error("delayed featured expiry failed",
				zap.String("featured_id", id.String()), zap.Error(err))
		}
	})
}

func (s *PromotionService) scheduleHotDealExpiry(id uuid.UUID, at int64) {
	if s.scheduler == nil {
		return
	}
	s.scheduler.Schedule(utils.FromUnixSeconds(at), func(ctx context.Context) {
		if _, err := s.ExpireHotDealByID(ctx, id, "delay"); err != nil {
			s.logger.Error("delayed hot deal expiry failed",
				zap.String("deal_id", id.String()), zap.Error(err))
		}
	})
}

func (s *PromotionService) promotableStore(ctx context.Context, ownerID string) (*db_models.Store, *db_models.Subscription, error) {
	owner, err := parseUUID(ownerID)
	if err != nil {
		return nil, nil, utils.ErrForbidden
	}
	store, err := s.storeRepo.GetByOwner(ctx, owner)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if store == nil {
		return nil, nil, utils.RecordNotFound
	}
	if store.Status != db_models.StoreStatusActive {
		return nil, nil, utils.ErrStoreNotActive
	}

	sub, err := s.subRepo.CurrentActiveForStore(ctx, store.ID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if sub == nil {
		// No active subscription resolves to the basic tier, which grants
		// zero promotion slots. The caller rejects the same way a full
		// plan would.
		return store, nil, nil
	}
	if now := utils.NowUnixSeconds(); sub.EndsAt > 0 && sub.EndsAt <= now {
		return nil, nil, utils.ErrSubscriptionInvalid
	}
	return store, sub, nil
}

func (s *PromotionService) rejectWithoutSubscription(promotionType string) error {
	s.metrics.RecordPromotionRejected(promotionType, string(db_models.PlanBasic))
	return &utils.SlotLimitError{PromotionType: promotionType, MaxSlots: 0, Remaining: 0}
}

func (s *PromotionService) promotableProduct(ctx context.Context, storeID uuid.UUID, productID string) (*db_models.Product, error) {
	id, err := parseUUID(productID)
	if err != nil {
		return nil, utils.RecordNotFound
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.RecordNotFound
	}
	if product.StoreID != storeID {
		return nil, utils.ErrForbidden
	}
	if product.Status != db_models.ProductStatusActive {
		return nil, utils.ErrForbidden
	}
	return product, nil
}

func (s *PromotionService) publishPromotionEvent(promotionType string, id, productID, storeID uuid.UUID, code, planType, transition string) {
	err := s.publisher.PublishPromotion(kafka.PromotionEvent{
		PromotionType:    promotionType,
		PromotionID:      id.String(),
		ProductID:        productID.String(),
		StoreID:          storeID.String(),
		SubscriptionCode: code,
		PlanType:         planType,
		Transition:       transition,
		At:               utils.NowUnixSeconds(),
	})
	if err != nil {
		s.logger.Warn("promotion event publish failed",
			zap.String("transition", transition), zap.Error(err))
	}
}

func (s *PromotionService) notifyPromotionExpired(storeID, productID uuid.UUID, promotionType string) {
	go func() {
		ctx := context.Background()
		store, err := s.storeRepo.GetByID(ctx, storeID)
		if err != nil || store == nil {
			return
		}
		account, err := s.accountRepo.GetByID(ctx, store.OwnerID)
		if err != nil || account == nil {
			return
		}
		productName := "your product"
		if product, err := s.productRepo.GetByID(ctx, productID); err == nil && product != nil {
			productName = product.Name
		}
		if err := s.mail.SendPromotionExpired(account.Email, productName, promotionType); err != nil {
			s.logger.Warn("promotion expiry mail failed", zap.Error(err))
		}
	}()
}

func toFeaturedResponse(fp *db_models.FeaturedProduct, remaining int) response_models.FeaturedProductResponse {
	return response_models.FeaturedProductResponse{
		ID:               fp.ID,
		ProductID:        fp.ProductID,
		StoreID:          fp.StoreID,
		SubscriptionCode: fp.SubscriptionCode,
		PlanType:         string(fp.PlanType),
		FeaturedAt:       fp.FeaturedAt,
		FinishTime:       fp.FinishTime,
		RotatedOutAt:     fp.RotatedOutAt,
		IsActive:         fp.IsActive,
		RemainingSlots:   remaining,
	}
}

func toHotDealResponse(deal *db_models.HotDeal, now int64, remaining int) response_models.HotDealResponse {
	return response_models.HotDealResponse{
		ID:                 deal.ID,
		ProductID:          deal.ProductID,
		StoreID:            deal.StoreID,
		SubscriptionCode:   deal.SubscriptionCode,
		PlanType:           string(deal.PlanType),
		OriginalPrice:      deal.OriginalPrice,
		DealPrice:          deal.DealPrice,
		DiscountPercentage: deal.DiscountPercentage,
		DealStartAt:        deal.DealStartAt,
		DealEndAt:          deal.DealEndAt,
		IsActive:           deal.IsActive,
		CurrentlyActive:    deal.CurrentlyActive(now),
		RemainingSlots:     remaining,
	}
}
