package service

import (
	"context"
	"errors"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/models"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/redisclient"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/store"
	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AnalyticsService builds the admin and vendor dashboards and time-series
// reports. Results are cached briefly; slightly stale numbers are acceptable
// here.
type AnalyticsService struct {
	store  *store.Store
	cache  *redisclient.Client
	logger *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(st *store.Store, cache *redisclient.Client) *AnalyticsService {
	return &AnalyticsService{
		store:  st,
		cache:  cache,
		logger: util.GetLogger(),
	}
}

// periodCutoff maps a report period to its start time. Unknown periods fall
// back to 30 days.
func periodCutoff(period string, now time.Time) time.Time {
	switch period {
	case "7d":
		return now.AddDate(0, 0, -7)
	case "30d":
		return now.AddDate(0, 0, -30)
	case "90d":
		return now.AddDate(0, 0, -90)
	case "1y":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// growthPercent is the month-over-month change, 100% when last month was zero
// but this month is not.
func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

// AdminDashboard is the admin landing-page snapshot
type AdminDashboard struct {
	TotalUsers     int64                 `json:"totalUsers"`
	TotalCustomers int64                 `json:"totalCustomers"`
	TotalVendors   int64                 `json:"totalVendors"`
	PendingVendors int64                 `json:"pendingVendors"`
	TotalProducts  int64                 `json:"totalProducts"`
	TotalOrders    int64                 `json:"totalOrders"`
	TotalRevenue   float64               `json:"totalRevenue"`
	RevenueGrowth  float64               `json:"revenueGrowth"`
	OrderGrowth    float64               `json:"orderGrowth"`
	UserGrowth     float64               `json:"userGrowth"`
	OrderStatuses  []store.StatusCount   `json:"orderStatuses"`
	TopCategories  []store.CategoryCount `json:"topCategories"`
	RecentOrders   []models.Order        `json:"recentOrders"`
	RecentVendors  []models.Vendor       `json:"recentVendors"`
	RecentReviews  []models.Review       `json:"recentReviews"`
}

// GetAdminDashboard assembles the platform-wide dashboard
func (s *AnalyticsService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.GetAdminDashboard")
	defer span.End()

	key := redisclient.DashboardKey("admin", "platform")
	var cached AdminDashboard
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	dash := &AdminDashboard{}
	var err error

	if dash.TotalUsers, err = s.store.CountUsers(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if dash.TotalCustomers, err = s.store.CountUsers(ctx, bson.M{"role": models.RoleCustomer}); err != nil {
		return nil, err
	}
	if dash.TotalVendors, err = s.store.CountVendors(ctx, bson.M{"isApproved": true}); err != nil {
		return nil, err
	}
	if dash.PendingVendors, err = s.store.CountVendors(ctx, bson.M{"isApproved": false}); err != nil {
		return nil, err
	}
	if dash.TotalProducts, err = s.store.CountProducts(ctx, bson.M{"isActive": true}); err != nil {
		return nil, err
	}
	if dash.TotalOrders, err = s.store.CountOrders(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if dash.TotalRevenue, err = s.store.RevenueTotal(ctx, store.PaidOrderMatch()); err != nil {
		return nil, err
	}

	// Calendar-month comparison: this month so far vs all of last month.
	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	currentRevenue, err := s.store.RevenueTotal(ctx, withCreatedBetween(store.PaidOrderMatch(), thisMonth, now))
	if err != nil {
		return nil, err
	}
	previousRevenue, err := s.store.RevenueTotal(ctx, withCreatedBetween(store.PaidOrderMatch(), lastMonth, thisMonth))
	if err != nil {
		return nil, err
	}
	dash.RevenueGrowth = growthPercent(currentRevenue, previousRevenue)

	currentOrders, err := s.store.CountOrders(ctx, withCreatedBetween(bson.M{}, thisMonth, now))
	if err != nil {
		return nil, err
	}
	previousOrders, err := s.store.CountOrders(ctx, withCreatedBetween(bson.M{}, lastMonth, thisMonth))
	if err != nil {
		return nil, err
	}
	dash.OrderGrowth = growthPercent(float64(currentOrders), float64(previousOrders))

	currentUsers, err := s.store.CountUsers(ctx, withCreatedBetween(bson.M{}, thisMonth, now))
	if err != nil {
		return nil, err
	}
	previousUsers, err := s.store.CountUsers(ctx, withCreatedBetween(bson.M{}, lastMonth, thisMonth))
	if err != nil {
		return nil, err
	}
	dash.UserGrowth = growthPercent(float64(currentUsers), float64(previousUsers))

	if dash.OrderStatuses, err = s.store.OrderStatusBreakdown(ctx); err != nil {
		return nil, err
	}
	if dash.TopCategories, err = s.store.TopCategories(ctx, 5); err != nil {
		return nil, err
	}
	if dash.RecentOrders, err = s.store.RecentOrders(ctx, bson.M{}, 5); err != nil {
		return nil, err
	}
	if dash.RecentVendors, err = s.store.RecentVendors(ctx, 5); err != nil {
		return nil, err
	}
	if dash.RecentReviews, err = s.store.RecentReviews(ctx, bson.M{}, 5); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, dash, redisclient.DashboardTTL)
	return dash, nil
}

// AdminAnalytics is the platform time-series report for one period
type AdminAnalytics struct {
	Period        string                   `json:"period"`
	RevenueByDay  []store.RevenuePoint     `json:"revenueByDay"`
	UserGrowth    []store.UserGrowthPoint  `json:"userGrowth"`
	TopVendors    []store.VendorRevenueRow `json:"topVendors"`
	TopCategories []store.CategoryCount    `json:"topCategories"`
}

// GetAdminAnalytics assembles the platform report for the given period
func (s *AnalyticsService) GetAdminAnalytics(ctx context.Context, period string) (*AdminAnalytics, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.GetAdminAnalytics")
	defer span.End()

	key := redisclient.AnalyticsKey("admin", "platform", period)
	var cached AdminAnalytics
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	since := periodCutoff(period, time.Now())
	report := &AdminAnalytics{Period: period}
	var err error

	if report.RevenueByDay, err = s.store.RevenueByDay(ctx, since); err != nil {
		return nil, err
	}
	if report.UserGrowth, err = s.store.UserGrowthByDay(ctx, since); err != nil {
		return nil, err
	}
	if report.TopVendors, err = s.store.TopVendorsByRevenue(ctx, since, 10); err != nil {
		return nil, err
	}
	if report.TopCategories, err = s.store.TopCategories(ctx, 10); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, report, redisclient.AnalyticsTTL)
	return report, nil
}

// VendorDashboard is the vendor landing-page snapshot
type VendorDashboard struct {
	TotalProducts   int64            `json:"totalProducts"`
	ActiveProducts  int64            `json:"activeProducts"`
	TotalOrders     int64            `json:"totalOrders"`
	TotalRevenue    float64          `json:"totalRevenue"`
	RevenueGrowth   float64          `json:"revenueGrowth"`
	Rating          models.Rating    `json:"rating"`
	LowStock        []models.Product `json:"lowStock"`
	RecentOrders    []models.Order   `json:"recentOrders"`
	RecentReviews   []models.Review  `json:"recentReviews"`
	PendingApproval bool             `json:"pendingApproval"`
}

// GetVendorDashboard assembles the calling vendor's dashboard
func (s *AnalyticsService) GetVendorDashboard(ctx context.Context, userID primitive.ObjectID) (*VendorDashboard, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.GetVendorDashboard")
	defer span.End()

	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	key := redisclient.DashboardKey("vendor", vendor.ID.Hex())
	var cached VendorDashboard
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	dash := &VendorDashboard{
		Rating:          vendor.Rating,
		PendingApproval: !vendor.IsApproved,
	}

	if dash.TotalProducts, err = s.store.CountProducts(ctx, bson.M{"vendor": vendor.ID}); err != nil {
		return nil, err
	}
	if dash.ActiveProducts, err = s.store.CountProducts(ctx, bson.M{"vendor": vendor.ID, "isActive": true}); err != nil {
		return nil, err
	}
	if dash.TotalOrders, err = s.store.CountOrders(ctx, bson.M{"items.vendor": vendor.ID}); err != nil {
		return nil, err
	}
	if dash.TotalRevenue, err = s.store.VendorItemRevenue(ctx, vendor.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	currentRevenue, err := s.store.VendorRevenueBetween(ctx, vendor.ID, thisMonth, now)
	if err != nil {
		return nil, err
	}
	previousRevenue, err := s.store.VendorRevenueBetween(ctx, vendor.ID, lastMonth, thisMonth)
	if err != nil {
		return nil, err
	}
	dash.RevenueGrowth = growthPercent(currentRevenue, previousRevenue)

	if dash.LowStock, err = s.store.LowStockProducts(ctx, vendor.ID, 5); err != nil {
		return nil, err
	}
	if dash.RecentOrders, err = s.store.RecentOrders(ctx, bson.M{"items.vendor": vendor.ID}, 5); err != nil {
		return nil, err
	}
	if dash.RecentReviews, err = s.store.RecentReviews(ctx, bson.M{"vendor": vendor.ID, "isApproved": true}, 5); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, dash, redisclient.DashboardTTL)
	return dash, nil
}

// VendorAnalytics is the vendor time-series report for one period
type VendorAnalytics struct {
	Period      string                  `json:"period"`
	SalesByDay  []store.RevenuePoint    `json:"salesByDay"`
	TopProducts []store.ProductSalesRow `json:"topProducts"`
}

// GetVendorAnalytics assembles the calling vendor's report for the period
func (s *AnalyticsService) GetVendorAnalytics(ctx context.Context, userID primitive.ObjectID, period string) (*VendorAnalytics, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.GetVendorAnalytics")
	defer span.End()

	vendor, err := s.store.GetVendorByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrVendorNotFound
	}
	if err != nil {
		return nil, err
	}

	key := redisclient.AnalyticsKey("vendor", vendor.ID.Hex(), period)
	var cached VendorAnalytics
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	since := periodCutoff(period, time.Now())
	report := &VendorAnalytics{Period: period}

	if report.SalesByDay, err = s.store.VendorSalesByDay(ctx, vendor.ID, since); err != nil {
		return nil, err
	}
	if report.TopProducts, err = s.store.TopProductsForVendor(ctx, vendor.ID, since, 10); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, report, redisclient.AnalyticsTTL)
	return report, nil
}

func withCreatedBetween(match bson.M, from, to time.Time) bson.M {
	match["createdAt"] = bson.M{"$gte": from, "$lt": to}
	return match
}

func (s *AnalyticsService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.GetJSON(ctx, key, dest)
	if err == nil {
		util.CacheHitsTotal.WithLabelValues("analytics").Inc()
		return true
	}
	if !errors.Is(err, redisclient.ErrCacheMiss) {
		s.logger.Warn("Analytics cache read failed", zap.Error(err))
	}
	util.CacheMissesTotal.WithLabelValues("analytics").Inc()
	return false
}

func (s *AnalyticsService) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, ttl); err != nil {
		s.logger.Warn("Analytics cache write failed", zap.Error(err))
	}
}
