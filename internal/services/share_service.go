package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dealdock/dealdock/internal/models"
)

var (
	// ErrShareNotFound indicates no room matches the share token.
	ErrShareNotFound = errors.New("share service: room not found")
	// ErrShareNotAvailable indicates the room exists but is not published.
	ErrShareNotAvailable = errors.New("share service: room not available")
	// ErrShareExpired indicates the room's expiry timestamp has passed.
	ErrShareExpired = errors.New("share service: room has expired")
	// ErrSharePasswordMismatch indicates a failed password verification.
	ErrSharePasswordMismatch = errors.New("share service: invalid password")
)

// ShareService implements the unauthenticated share-link surface: token
// resolution, gate verification, and engagement tracking.
type ShareService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewShareService constructs a share service once a database handle is supplied.
func NewShareService(db *gorm.DB) (*ShareService, error) {
	if db == nil {
		return nil, errors.New("share service: db is required")
	}
	return &ShareService{db: db, now: time.Now}, nil
}

// WithClock overrides the clock, primarily for expiry tests.
func (s *ShareService) WithClock(now func() time.Time) *ShareService {
	if s != nil && now != nil {
		s.now = now
	}
	return s
}

// Resolve returns the room for a share token. Rooms that are not published
// never resolve; rooms past their expiry resolve to ErrShareExpired. Gating
// (email/password) is the caller's concern and runs after this.
func (s *ShareService) Resolve(ctx context.Context, token string) (*models.DealRoom, error) {
	if s == nil {
		return nil, errors.New("share service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	room, err := s.byToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if room.Status != models.RoomStatusPublished {
		return nil, ErrShareNotAvailable
	}
	if room.Expired(s.now()) {
		return nil, ErrShareExpired
	}
	return room, nil
}

// VerifyPassword checks the gate password for the room behind the token.
// Rooms without a password always verify; mismatches never lock out.
func (s *ShareService) VerifyPassword(ctx context.Context, token, candidate string) error {
	if s == nil {
		return errors.New("share service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	room, err := s.byToken(ctx, token)
	if err != nil {
		return err
	}

	if room.HasPassword() && candidate != *room.Password {
		return ErrSharePasswordMismatch
	}
	return nil
}

// TrackViewInput captures the visitor fields sent with a track call.
type TrackViewInput struct {
	VisitorID     string
	ViewerEmail   string
	ViewerName    string
	ViewerCompany string
	UserAgent     string
	Referrer      string
}

// TrackView records one view row for the room behind the token and returns
// it; the view id keys all subsequent click and duration calls.
func (s *ShareService) TrackView(ctx context.Context, token string, input TrackViewInput) (*models.DealRoomView, error) {
	if s == nil {
		return nil, errors.New("share service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	room, err := s.byToken(ctx, token)
	if err != nil {
		return nil, err
	}

	visitorID := strings.TrimSpace(input.VisitorID)
	if visitorID == "" {
		visitorID = uuid.NewString()
	}

	view := models.DealRoomView{
		DealRoomID:    room.ID,
		VisitorID:     visitorID,
		ViewerEmail:   strings.TrimSpace(input.ViewerEmail),
		ViewerName:    strings.TrimSpace(input.ViewerName),
		ViewerCompany: strings.TrimSpace(input.ViewerCompany),
		UserAgent:     input.UserAgent,
		Device:        DeviceClass(input.UserAgent),
		Referrer:      input.Referrer,
		Duration:      0,
	}
	if err := s.db.WithContext(ctx).Create(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

// RecordClick stores one asset open against an existing view.
func (s *ShareService) RecordClick(ctx context.Context, assetID, viewID string) (*models.AssetClick, error) {
	if s == nil {
		return nil, errors.New("share service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	assetID = strings.TrimSpace(assetID)
	viewID = strings.TrimSpace(viewID)
	if assetID == "" || viewID == "" {
		return nil, errors.New("share service: asset id and view id are required")
	}

	click := models.AssetClick{
		AssetID:    assetID,
		ViewID:     viewID,
		Duration:   0,
		Downloaded: false,
	}
	if err := s.db.WithContext(ctx).Create(&click).Error; err != nil {
		return nil, err
	}
	return &click, nil
}

// RecordDuration overwrites a view's accumulated duration with the absolute
// cumulative value pushed by the viewer's beacon. Overwriting means a missed
// beacon undercounts but never double-counts.
func (s *ShareService) RecordDuration(ctx context.Context, viewID string, seconds int) error {
	if s == nil {
		return errors.New("share service: service not initialised")
	}
	ctx = ensuredContext(ctx)

	viewID = strings.TrimSpace(viewID)
	if viewID == "" {
		return errors.New("share service: view id is required")
	}

	return s.db.WithContext(ctx).
		Model(&models.DealRoomView{}).
		Where("id = ?", viewID).
		Update("duration", seconds).Error
}

func (s *ShareService) byToken(ctx context.Context, token string) (*models.DealRoom, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrShareNotFound
	}

	var room models.DealRoom
	err := s.db.WithContext(ctx).First(&room, "share_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}
	return &room, nil
}

// DeviceClass derives the visitor's device class from the user agent.
func DeviceClass(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	switch {
	case ua == "":
		return models.DeviceUnknown
	case strings.Contains(ua, "mobile"):
		return models.DeviceMobile
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return models.DeviceTablet
	default:
		return models.DeviceDesktop
	}
}
