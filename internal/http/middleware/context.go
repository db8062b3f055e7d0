package middleware

import "context"

type contextKey string

const sessionSlotKey contextKey = "sessionSlot"

func withSessionSlot(ctx context.Context, slot *sessionSlot) context.Context {
	return context.WithValue(ctx, sessionSlotKey, slot)
}

func sessionSlotFrom(ctx context.Context) (*sessionSlot, bool) {
	slot, ok := ctx.Value(sessionSlotKey).(*sessionSlot)
	return slot, ok
}
