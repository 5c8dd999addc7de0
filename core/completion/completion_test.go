package completion_test

import (
	"testing"
	"time"

	"github.com/momentics/hioload-video/api"
	"github.com/momentics/hioload-video/control"
	"github.com/momentics/hioload-video/core/completion"
	"github.com/momentics/hioload-video/core/protocol"
	"github.com/momentics/hioload-video/fake"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func newDevice(t *testing.T) (*completion.Device, *fake.ReplySource) {
	t.Helper()
	src := fake.NewReplySource()
	d := completion.NewDevice(src, completion.WithMetrics(control.NewMetricsRegistry()))
	return d, src
}

func TestCompleteWorkTransmitsDequeueResponse(t *testing.T) {
	d, _ := newDevice(t)
	s, err := d.NewStream(7)
	if err != nil {
		t.Fatal(err)
	}

	slot := fake.NewReplySlot(protocol.DequeueRespSize)
	w := completion.NewWork(s, nil, api.DirOutput, slot)
	w.Timestamp = 33000000000
	w.Flags = api.BufferFlagIFrame
	w.Size = 4096

	if err := d.CompleteWork(w); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return slot.Completed() == protocol.DequeueRespSize })

	resp, err := protocol.DecodeDequeueResp(slot.Written())
	if err != nil {
		t.Fatal(err)
	}
	if resp.Hdr.Status != protocol.StatusOKNoData || resp.Hdr.StreamID != 7 {
		t.Errorf("header = %+v", resp.Hdr)
	}
	if resp.Timestamp != 33000000000 || resp.Flags != uint32(api.BufferFlagIFrame) || resp.Size != 4096 {
		t.Errorf("payload = %+v", resp)
	}
	d.Close()
}

func TestCompleteWorkTransportFaultDetaches(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(1)

	slot := fake.NewReplySlot(protocol.DequeueRespSize)
	slot.FailWrites(api.ErrTransportFault)
	w := completion.NewWork(s, nil, api.DirOutput, slot)

	if err := d.CompleteWork(w); err != nil {
		t.Fatal(err)
	}
	waitFor(t, slot.Detached)
	if slot.Completed() != 0 {
		t.Error("faulted slot was also completed")
	}
	d.Close()
}

func TestFinishInflightSendsOKHeader(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(5)

	slot := fake.NewReplySlot(protocol.CmdHdrSize)
	if err := s.SetInflight(protocol.CmdStreamDrain, slot); err != nil {
		t.Fatal(err)
	}
	if err := d.FinishInflight(s); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return slot.Completed() == protocol.CmdHdrSize })

	hdr, err := protocol.DecodeCmdHdr(slot.Written())
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Status != protocol.StatusOKNoData || hdr.StreamID != 5 {
		t.Errorf("header = %+v", hdr)
	}
	d.Close()
}

func TestCancelInflightSendsInvalidOp(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(6)

	slot := fake.NewReplySlot(protocol.CmdHdrSize)
	s.SetInflight(protocol.CmdQueueClear, slot)
	if err := d.CancelInflight(s); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return slot.Completed() == protocol.CmdHdrSize })

	hdr, _ := protocol.DecodeCmdHdr(slot.Written())
	if hdr.Status != protocol.StatusErrInvalidOp {
		t.Errorf("status = %#x, want invalid-operation", hdr.Status)
	}
	d.Close()
}

func TestDoubleInflightResolutionRejected(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(2)

	slot := fake.NewReplySlot(protocol.CmdHdrSize)
	s.SetInflight(protocol.CmdStreamDrain, slot)
	if err := d.FinishInflight(s); err != nil {
		t.Fatal(err)
	}
	if err := d.FinishInflight(s); err != api.ErrInvariantViolation {
		t.Fatalf("second resolution = %v, want ErrInvariantViolation", err)
	}
	waitFor(t, func() bool { return slot.Completed() == protocol.CmdHdrSize })
	d.Close()
}

func TestSecondInflightCommandRejected(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(3)

	if err := s.SetInflight(protocol.CmdStreamDrain, fake.NewReplySlot(8)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetInflight(protocol.CmdQueueClear, fake.NewReplySlot(8)); err != api.ErrInvariantViolation {
		t.Fatalf("second command = %v, want ErrInvariantViolation", err)
	}
	d.CancelInflight(s)
	d.Close()
}

func TestPendingWorkQueueFIFO(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(4)

	first := completion.NewWork(s, nil, api.DirInput, fake.NewReplySlot(24))
	second := completion.NewWork(s, nil, api.DirInput, fake.NewReplySlot(24))
	s.PushWork(first)
	s.PushWork(second)

	if got, ok := s.PopWork(api.DirInput); !ok || got != first {
		t.Error("first pop did not return oldest work")
	}
	if got, ok := s.PopWork(api.DirInput); !ok || got != second {
		t.Error("second pop did not return next work")
	}
	if _, ok := s.PopWork(api.DirInput); ok {
		t.Error("pop from empty queue succeeded")
	}
	d.Close()
}

func TestDeviceReferencesDrainOnClose(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(8)

	for i := 0; i < 16; i++ {
		w := completion.NewWork(s, nil, api.DirOutput, fake.NewReplySlot(protocol.DequeueRespSize))
		if err := d.CompleteWork(w); err != nil {
			t.Fatal(err)
		}
	}
	d.Close()
	if refs := d.Refs(); refs != 0 {
		t.Fatalf("refs after close = %d, want 0", refs)
	}
}

func TestSubmitAfterCloseRejected(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(9)
	d.Close()
	w := completion.NewWork(s, nil, api.DirOutput, fake.NewReplySlot(24))
	if err := d.CompleteWork(w); err != api.ErrDeviceClosed {
		t.Fatalf("CompleteWork after close = %v, want ErrDeviceClosed", err)
	}
}

func TestCloseCancelsInflightAndReleasesPendingSlots(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(11)

	cmdSlot := fake.NewReplySlot(protocol.CmdHdrSize)
	if err := s.SetInflight(protocol.CmdStreamDrain, cmdSlot); err != nil {
		t.Fatal(err)
	}
	workSlot := fake.NewReplySlot(protocol.DequeueRespSize)
	s.PushWork(completion.NewWork(s, nil, api.DirOutput, workSlot))

	d.Close()

	// The interrupted command is cancel-responded, not dropped.
	if got := cmdSlot.Completed(); got != protocol.CmdHdrSize {
		t.Fatalf("inflight slot completed %d bytes, want %d", got, protocol.CmdHdrSize)
	}
	hdr, err := protocol.DecodeCmdHdr(cmdSlot.Written())
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Status != protocol.StatusErrInvalidOp || hdr.StreamID != 11 {
		t.Errorf("cancel header = %+v", hdr)
	}
	// The work never completed, but its transport element is returned.
	if !workSlot.Detached() {
		t.Error("pending work slot still attached after close")
	}
	if refs := d.Refs(); refs != 0 {
		t.Errorf("refs after close = %d, want 0", refs)
	}
}

func TestRemoveStreamReleasesOwnedSlots(t *testing.T) {
	d, _ := newDevice(t)
	s, _ := d.NewStream(12)

	cmdSlot := fake.NewReplySlot(protocol.CmdHdrSize)
	if err := s.SetInflight(protocol.CmdQueueClear, cmdSlot); err != nil {
		t.Fatal(err)
	}
	workSlot := fake.NewReplySlot(protocol.DequeueRespSize)
	s.PushWork(completion.NewWork(s, nil, api.DirInput, workSlot))

	if err := d.RemoveStream(12); err != nil {
		t.Fatal(err)
	}
	if !cmdSlot.Detached() {
		t.Error("inflight slot still attached after stream removal")
	}
	if !workSlot.Detached() {
		t.Error("pending work slot still attached after stream removal")
	}
	d.Close()
}
