package window

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sagostin/smpp-engine/smpp/pdu"
)

func newReq() pdu.PDU {
	return &pdu.EnquireLink{}
}

func TestOfferAssignsSequenceAndCompletes(t *testing.T) {
	w := New(2, time.Second)
	f, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)
	require.NotZero(t, f.Sequence)
	require.Equal(t, 1, w.Size())

	resp := &pdu.EnquireLinkResp{}
	require.True(t, w.Complete(f.Sequence, resp))

	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	require.Same(t, resp, got)
	require.Equal(t, StateCompleted, f.State())
	require.Equal(t, 0, w.Size())
}

func TestCompleteUnknownSequenceReturnsFalse(t *testing.T) {
	w := New(2, time.Second)
	require.False(t, w.Complete(999, &pdu.EnquireLinkResp{}))
}

func TestSequenceNeverZeroAndIncrements(t *testing.T) {
	w := New(4, time.Second)
	var seqs []uint32
	for i := 0; i < 3; i++ {
		f, err := w.Offer(context.Background(), newReq(), time.Second)
		require.NoError(t, err)
		require.NotZero(t, f.Sequence)
		seqs = append(seqs, f.Sequence)
		w.Complete(f.Sequence, &pdu.EnquireLinkResp{})
	}
	require.Equal(t, []uint32{1, 2, 3}, seqs)
}

func TestSequenceWrapsAfterMax(t *testing.T) {
	w := New(2, time.Second)
	w.seq = maxSequence - 1

	f1, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)
	require.Equal(t, uint32(maxSequence), f1.Sequence)
	w.Complete(f1.Sequence, &pdu.EnquireLinkResp{})

	f2, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)
	require.Equal(t, uint32(1), f2.Sequence)
}

// TestWindowFullBlocksUntilSlotFrees: offering beyond capacity blocks,
// then succeeds once a slot is freed.
func TestWindowFullBlocksUntilSlotFrees(t *testing.T) {
	w := New(1, time.Minute)
	f1, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)
	require.True(t, w.IsFull())

	_, ok := w.TryOffer(newReq())
	require.False(t, ok)

	done := make(chan *Future, 1)
	go func() {
		f, err := w.Offer(context.Background(), newReq(), time.Second)
		require.NoError(t, err)
		done <- f
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("second offer should not have completed before slot freed")
	default:
	}

	require.True(t, w.Complete(f1.Sequence, &pdu.EnquireLinkResp{}))

	select {
	case f2 := <-done:
		require.NotNil(t, f2)
	case <-time.After(time.Second):
		t.Fatal("offer did not unblock after slot freed")
	}
}

func TestOfferTimesOutWhenWindowStaysFull(t *testing.T) {
	w := New(1, time.Minute)
	_, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	_, err = w.Offer(context.Background(), newReq(), 20*time.Millisecond)
	require.ErrorIs(t, err, ErrWindowFull)
}

func TestOfferRespectsContextCancellation(t *testing.T) {
	w := New(1, time.Minute)
	_, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err = w.Offer(ctx, newReq(), time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}

// TestExpireOldRequests: a request left pending beyond its timeout is
// failed with ErrRequestTimedOut and its slot is released.
func TestExpireOldRequests(t *testing.T) {
	w := New(2, 10*time.Millisecond)
	f, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, 1, w.ExpireOldRequests())

	_, err = f.Wait(context.Background())
	require.ErrorIs(t, err, ErrRequestTimedOut)
	require.Equal(t, StateTimedOut, f.State())
	require.Equal(t, 0, w.Size())
	require.Equal(t, w.size, w.AvailableSlots())
}

func TestExpireOldRequestsLeavesFreshPending(t *testing.T) {
	w := New(2, time.Minute)
	f, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	require.Equal(t, 0, w.ExpireOldRequests())
	require.Equal(t, StatePending, f.State())
	require.Equal(t, 1, w.Size())
}

func TestCancelRemovesPendingAndFreesSlot(t *testing.T) {
	w := New(1, time.Minute)
	f, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	require.True(t, f.Cancel())
	require.Equal(t, StateCancelled, f.State())
	require.Equal(t, 0, w.Size())

	_, ok := w.TryOffer(newReq())
	require.True(t, ok)
}

func TestCancelAfterCompleteIsNoop(t *testing.T) {
	w := New(1, time.Minute)
	f, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	require.True(t, w.Complete(f.Sequence, &pdu.EnquireLinkResp{}))
	require.False(t, f.Cancel())
	require.Equal(t, StateCompleted, f.State())
}

func TestCloseFailsAllPending(t *testing.T) {
	w := New(4, time.Minute)
	var futures []*Future
	for i := 0; i < 3; i++ {
		f, err := w.Offer(context.Background(), newReq(), time.Second)
		require.NoError(t, err)
		futures = append(futures, f)
	}

	w.Close(nil)

	for _, f := range futures {
		_, err := f.Wait(context.Background())
		require.ErrorIs(t, err, ErrSessionClosed)
	}

	_, err := w.Offer(context.Background(), newReq(), time.Second)
	require.ErrorIs(t, err, ErrWindowClosed)
}

func TestRunExpiryLoopExpiresOnTicker(t *testing.T) {
	w := New(2, 15*time.Millisecond)
	f, err := w.Offer(context.Background(), newReq(), time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.RunExpiryLoop(ctx)

	_, err = f.Wait(context.Background())
	require.ErrorIs(t, err, ErrRequestTimedOut)
}

func TestConcurrentOfferAndCompleteAreRaceFree(t *testing.T) {
	w := New(8, time.Second)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := w.Offer(context.Background(), newReq(), time.Second)
			if err != nil {
				return
			}
			w.Complete(f.Sequence, &pdu.EnquireLinkResp{})
		}()
	}
	wg.Wait()
	require.Equal(t, 0, w.Size())
	require.Equal(t, w.size, w.AvailableSlots())
}
