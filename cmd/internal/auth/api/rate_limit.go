package authapi

import (
	"context"
	"net"
	"time"
)

func (h *Handler) checkLoginIPThrottle(ctx context.Context, ip net.IP, now time.Time) (bool, error) {
	if ip == nil || h.cfg.LoginIPMax <= 0 {
		return false, nil
	}
	cut := now.Add(-h.cfg.LoginIPWindow)
	count, err := h.audit.CountLoginFailuresByIP(ctx, ip, cut)
	if err != nil {
		return false, err
	}
	return count >= h.cfg.LoginIPMax, nil
}

func (h *Handler) checkLoginIdentifierThrottle(ctx context.Context, identifierHash string, now time.Time) (bool, error) {
	if identifierHash == "" || h.cfg.LoginIdentifierMax <= 0 {
		return false, nil
	}
	cut := now.Add(-h.cfg.LoginIdentifierWindow)
	count, err := h.audit.CountLoginFailuresByIdentifier(ctx, identifierHash, cut)
	if err != nil {
		return false, err
	}
	return count >= h.cfg.LoginIdentifierMax, nil
}
