package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

const (
	topRoomLimit        = 5
	viewsByDayWindow    = 14
	recentActivityLimit = 10
	recentPerRoomLimit  = 5
)

// RoomStat ranks a room by engagement.
type RoomStat struct {
	Name   string `json:"name"`
	Views  int    `json:"views"`
	Clicks int    `json:"clicks"`
}

// DayCount holds the view count for one UTC calendar day.
type DayCount struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// DeviceCount holds the view count for one device class. Ordering is
// implementation-defined.
type DeviceCount struct {
	Device string `json:"device"`
	Count  int    `json:"count"`
}

// Overview aggregates an organization's engagement across all its rooms.
type Overview struct {
	TotalRooms      int           `json:"totalRooms"`
	TotalViews      int           `json:"totalViews"`
	TotalClicks     int           `json:"totalClicks"`
	ViewsThisWeek   int           `json:"viewsThisWeek"`
	TopRooms        []RoomStat    `json:"topRooms"`
	ViewsByDay      []DayCount    `json:"viewsByDay"`
	DeviceBreakdown []DeviceCount `json:"deviceBreakdown"`
}

// ActivityEntry is one recent view enriched with its room's name.
type ActivityEntry struct {
	models.DealRoomView
	DealRoomName string `json:"dealRoomName"`
}

// AnalyticsService computes engagement rollups for the seller dashboard.
type AnalyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService constructs an analytics service once a database handle is supplied.
func NewAnalyticsService(db *gorm.DB) (*AnalyticsService, error) {
	if db == nil {
		return nil, errors.New("analytics service: db is required")
	}
	return &AnalyticsService{db: db, now: time.Now}, nil
}

// WithClock overrides the clock, primarily for rolling-window tests.
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	if s != nil && now != nil {
		s.now = now
	}
	return s
}

type roomRow struct {
	ID   string
	Name string
}

type viewRow struct {
	DealRoomID string
	Device     string
	ViewedAt   time.Time
}

type clickCountRow struct {
	RoomID string
	N      int
}

// Overview scans the organization's rooms, views, and clicks with set-based
// queries and aggregates in memory. An organization with no rooms yields
// all-zero, all-empty results.
func (s *AnalyticsService) Overview(ctx context.Context, orgID string) (*Overview, error) {
	if s == nil {
		return nil, errors.New("analytics service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	overview := &Overview{
		TopRooms:        []RoomStat{},
		ViewsByDay:      []DayCount{},
		DeviceBreakdown: []DeviceCount{},
	}

	rooms, err := s.orgRooms(ctx, orgID)
	if err != nil {
		return nil, err
	}
	overview.TotalRooms = len(rooms)
	if len(rooms) == 0 {
		return overview, nil
	}

	roomIDs := make([]string, len(rooms))
	for i, r := range rooms {
		roomIDs[i] = r.ID
	}

	var views []viewRow
	err = s.db.WithContext(ctx).
		Model(&models.DealRoomView{}).
		Select("deal_room_id", "device", "viewed_at").
		Where("deal_room_id IN ?", roomIDs).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}

	var clickCounts []clickCountRow
	err = s.db.WithContext(ctx).
		Model(&models.AssetClick{}).
		Select("deal_room_assets.deal_room_id AS room_id", "COUNT(*) AS n").
		Joins("JOIN deal_room_assets ON deal_room_assets.id = asset_clicks.asset_id").
		Where("deal_room_assets.deal_room_id IN ?", roomIDs).
		Group("deal_room_assets.deal_room_id").
		Scan(&clickCounts).Error
	if err != nil {
		return nil, err
	}

	clicksByRoom := make(map[string]int, len(clickCounts))
	for _, row := range clickCounts {
		clicksByRoom[row.RoomID] = row.N
		overview.TotalClicks += row.N
	}

	overview.TotalViews = len(views)

	weekAgo := s.now().AddDate(0, 0, -7)
	viewsByRoom := make(map[string]int)
	viewsByDay := make(map[string]int)
	viewsByDevice := make(map[string]int)
	for _, v := range views {
		viewsByRoom[v.DealRoomID]++
		viewsByDay[v.ViewedAt.UTC().Format("2006-01-02")]++

		device := v.Device
		if device == "" {
			device = models.DeviceUnknown
		}
		viewsByDevice[device]++

		if !v.ViewedAt.Before(weekAgo) {
			overview.ViewsThisWeek++
		}
	}

	stats := make([]RoomStat, len(rooms))
	for i, r := range rooms {
		stats[i] = RoomStat{
			Name:   r.Name,
			Views:  viewsByRoom[r.ID],
			Clicks: clicksByRoom[r.ID],
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Views > stats[j].Views })
	if len(stats) > topRoomLimit {
		stats = stats[:topRoomLimit]
	}
	overview.TopRooms = stats

	days := make([]string, 0, len(viewsByDay))
	for day := range viewsByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > viewsByDayWindow {
		days = days[len(days)-viewsByDayWindow:]
	}
	for _, day := range days {
		overview.ViewsByDay = append(overview.ViewsByDay, DayCount{Date: day, Views: viewsByDay[day]})
	}

	for device, count := range viewsByDevice {
		overview.DeviceBreakdown = append(overview.DeviceBreakdown, DeviceCount{Device: device, Count: count})
	}

	return overview, nil
}

// RecentActivity returns up to the 10 most recent views across the
// organization's rooms. Each room contributes at most its 5 most recent
// views before the global merge, so a single very active room cannot crowd
// out the rest.
func (s *AnalyticsService) RecentActivity(ctx context.Context, orgID string) ([]ActivityEntry, error) {
	if s == nil {
		return nil, errors.New("analytics service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	rooms, err := s.orgRooms(ctx, orgID)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(rooms)*recentPerRoomLimit)
	for _, room := range rooms {
		var views []models.DealRoomView
		err := s.db.WithContext(ctx).
			Where("deal_room_id = ?", room.ID).
			Order("viewed_at DESC").
			Limit(recentPerRoomLimit).
			Find(&views).Error
		if err != nil {
			return nil, err
		}
		for _, v := range views {
			entries = append(entries, ActivityEntry{DealRoomView: v, DealRoomName: room.Name})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ViewedAt.After(entries[j].ViewedAt)
	})
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries, nil
}

func (s *AnalyticsService) orgRooms(ctx context.Context, orgID string) ([]roomRow, error) {
	var rooms []roomRow
	err := s.db.WithContext(ctx).
		Model(&models.DealRoom{}).
		Select("id", "name").
		Where("organization_id = ?", orgID).
		Order("created_at DESC").
		Scan(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
