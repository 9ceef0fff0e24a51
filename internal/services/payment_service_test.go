package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"soundpay/internal/core"
)

type fakeStore struct {
	saved    []core.Payment
	err      error
	failNext error
	nextID   int64
}

func (s *fakeStore) Save(_ context.Context, p core.Payment) (int64, error) {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return 0, err
	}
	if s.err != nil {
		return 0, s.err
	}
	s.nextID++
	s.saved = append(s.saved, p)
	return s.nextID, nil
}

type fakeDeduper struct {
	seen bool
	err  error
}

func (d *fakeDeduper) Seen(context.Context, string, string, string) (bool, error) {
	return d.seen, d.err
}

func (d *fakeDeduper) Release(context.Context, string, string, string) error {
	return nil
}

// claimDeduper mimics the Redis SET NX EX behavior within one test.
type claimDeduper struct {
	claims map[string]bool
}

func newClaimDeduper() *claimDeduper {
	return &claimDeduper{claims: make(map[string]bool)}
}

func (d *claimDeduper) key(app, amount, sender string) string {
	return app + "|" + amount + "|" + sender
}

func (d *claimDeduper) Seen(_ context.Context, app, amount, sender string) (bool, error) {
	k := d.key(app, amount, sender)
	if d.claims[k] {
		return true, nil
	}
	d.claims[k] = true
	return false, nil
}

func (d *claimDeduper) Release(_ context.Context, app, amount, sender string) error {
	delete(d.claims, d.key(app, amount, sender))
	return nil
}

type fakeAnnouncer struct {
	calls []string
	err   error
}

func (a *fakeAnnouncer) Announce(_ context.Context, amount, sender string, _ core.Language) error {
	a.calls = append(a.calls, amount+"|"+sender)
	return a.err
}

func receivedNotification() core.Notification {
	return core.NewNotification(
		"com.phonepe.app",
		"Raj Kumar",
		"You received ₹2,500.00 from Raj Kumar via PhonePe UPI",
		"")
}

func TestPaymentService_ProcessNotification(t *testing.T) {
	store := &fakeStore{}
	announcer := &fakeAnnouncer{}
	svc := NewPaymentService(store, nil, announcer, core.English, true)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	stored, err := svc.ProcessNotification(context.Background(), receivedNotification())
	if err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if !stored {
		t.Fatal("ProcessNotification() = false, want a stored payment")
	}

	if len(store.saved) != 1 {
		t.Fatalf("stored %d payments, want 1", len(store.saved))
	}
	p := store.saved[0]
	if p.Amount != "₹2500.00" {
		t.Errorf("Amount = %q, want %q", p.Amount, "₹2500.00")
	}
	if p.SenderName != "raj kumar" {
		t.Errorf("SenderName = %q, want %q (analysis text is lowercased)", p.SenderName, "raj kumar")
	}
	if p.AppName != "PhonePe" {
		t.Errorf("AppName = %q, want %q", p.AppName, "PhonePe")
	}
	if p.TimestampMillis != 1700000000000 {
		t.Errorf("TimestampMillis = %d, want the injected clock value", p.TimestampMillis)
	}

	if len(announcer.calls) != 1 {
		t.Fatalf("announcer called %d times, want 1", len(announcer.calls))
	}
	if announcer.calls[0] != "₹2500.00|raj kumar" {
		t.Errorf("announcer called with %q", announcer.calls[0])
	}
}

func TestPaymentService_SkipOutcomes(t *testing.T) {
	tests := []struct {
		name         string
		notification core.Notification
	}{
		{
			name:         "non payment app",
			notification: core.NewNotification("com.example.game", "Title", "You received ₹100 via upi", ""),
		},
		{
			name:         "sent payment",
			notification: core.NewNotification("com.phonepe.app", "", "You sent ₹100 to Ramesh via UPI", ""),
		},
		{
			name:         "received but no amount",
			notification: core.NewNotification("com.phonepe.app", "", "upi payment received rupees from someone", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			announcer := &fakeAnnouncer{}
			svc := NewPaymentService(store, nil, announcer, core.English, true)

			stored, err := svc.ProcessNotification(context.Background(), tt.notification)
			if err != nil {
				t.Fatalf("ProcessNotification() error = %v", err)
			}
			if stored {
				t.Error("ProcessNotification() = true, want a silent skip")
			}
			if len(store.saved) != 0 {
				t.Error("skip outcome must not persist anything")
			}
			if len(announcer.calls) != 0 {
				t.Error("skip outcome must not announce anything")
			}
		})
	}
}

func TestPaymentService_EmptyPackageRejected(t *testing.T) {
	svc := NewPaymentService(&fakeStore{}, nil, nil, core.English, false)

	_, err := svc.ProcessNotification(context.Background(), core.Notification{})
	if !errors.Is(err, core.ErrEmptyPackageName) {
		t.Errorf("ProcessNotification() error = %v, want ErrEmptyPackageName", err)
	}
}

func TestPaymentService_Duplicate(t *testing.T) {
	store := &fakeStore{}
	svc := NewPaymentService(store, &fakeDeduper{seen: true}, nil, core.English, true)

	stored, err := svc.ProcessNotification(context.Background(), receivedNotification())
	if err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if stored || len(store.saved) != 0 {
		t.Error("duplicate notification must be suppressed")
	}
}

func TestPaymentService_DedupFailureKeepsEvent(t *testing.T) {
	store := &fakeStore{}
	svc := NewPaymentService(store, &fakeDeduper{err: errors.New("redis down")}, nil, core.English, false)

	stored, err := svc.ProcessNotification(context.Background(), receivedNotification())
	if err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if !stored {
		t.Error("a dedup failure must not drop the payment")
	}
}

func TestPaymentService_StoreFailure(t *testing.T) {
	svc := NewPaymentService(&fakeStore{err: errors.New("disk full")}, nil, nil, core.English, true)

	stored, err := svc.ProcessNotification(context.Background(), receivedNotification())
	if err == nil {
		t.Fatal("ProcessNotification() should surface a storage error")
	}
	if stored {
		t.Error("ProcessNotification() = true on storage failure")
	}
}

func TestPaymentService_FailedSaveReleasesDedupClaim(t *testing.T) {
	store := &fakeStore{failNext: errors.New("disk full")}
	svc := NewPaymentService(store, newClaimDeduper(), nil, core.English, false)

	if _, err := svc.ProcessNotification(context.Background(), receivedNotification()); err == nil {
		t.Fatal("first delivery should surface the save error")
	}

	// A requeued redelivery of the same event arrives inside the dedup
	// window. The claim from the failed attempt must not suppress it.
	stored, err := svc.ProcessNotification(context.Background(), receivedNotification())
	if err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if !stored {
		t.Fatal("redelivery after a failed save was suppressed as a duplicate")
	}
	if len(store.saved) != 1 {
		t.Fatalf("stored %d payments, want 1", len(store.saved))
	}

	// A genuine duplicate after the successful save is still suppressed.
	stored, err = svc.ProcessNotification(context.Background(), receivedNotification())
	if err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if stored || len(store.saved) != 1 {
		t.Error("duplicate after a successful save must stay suppressed")
	}
}

func TestPaymentService_AnnouncementFailureTolerated(t *testing.T) {
	store := &fakeStore{}
	svc := NewPaymentService(store, nil, &fakeAnnouncer{err: errors.New("tts down")}, core.Hindi, true)

	stored, err := svc.ProcessNotification(context.Background(), receivedNotification())
	if err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if !stored || len(store.saved) != 1 {
		t.Error("announcement failure must not fail the event")
	}
}

func TestPaymentService_AnnouncementsDisabled(t *testing.T) {
	announcer := &fakeAnnouncer{}
	svc := NewPaymentService(&fakeStore{}, nil, announcer, core.English, false)

	if _, err := svc.ProcessNotification(context.Background(), receivedNotification()); err != nil {
		t.Fatalf("ProcessNotification() error = %v", err)
	}
	if len(announcer.calls) != 0 {
		t.Error("disabled announcements must not call the announcer")
	}
}
