package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	"github.com/google/uuid"
)

// SeatTokenService issues and verifies signed reconnect credentials. A token
// binds a seat id to a room so a returning client can prove it owned the
// seat without the server trusting a bare id from the wire.
type SeatTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSeatTokenService constructs the service. ttl bounds how long a
// disconnected seat can be reclaimed.
func NewSeatTokenService(secret string, ttl time.Duration) *SeatTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SeatTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// SetClock overrides the wall clock, for tests.
func (s *SeatTokenService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Issue signs a token for the given room and seat.
func (s *SeatTokenService) Issue(roomID, playerID string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", fmt.Errorf("seat token service is not configured")
	}
	if roomID == "" || playerID == "" {
		return "", fmt.Errorf("room and player ids are required")
	}

	claims := jwt.MapClaims{
		"jti": uuid.NewString(),
		"rid": roomID,
		"pid": playerID,
		"exp": s.now().Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks a token's signature and room binding and returns the seat id
// it carries.
func (s *SeatTokenService) Verify(tokenString, roomID string) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", fmt.Errorf("seat token service is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse seat token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("seat token is invalid")
	}
	if rid, _ := claims["rid"].(string); rid != roomID {
		return "", fmt.Errorf("seat token is for another room")
	}
	pid, _ := claims["pid"].(string)
	if pid == "" {
		return "", fmt.Errorf("seat token has no player id")
	}
	return pid, nil
}
