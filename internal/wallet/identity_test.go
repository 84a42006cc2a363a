package wallet

import "testing"

func TestIdentity(t *testing.T) {
	t.Run("starts disconnected", func(t *testing.T) {
		id := NewIdentity()
		if addr, ok := id.Address(); ok || addr != "" {
			t.Errorf("Address() = %q, %v; want \"\", false", addr, ok)
		}
	})

	t.Run("connect notifies listeners", func(t *testing.T) {
		id := NewIdentity()
		var got []string
		id.OnChange(func(addr string) { got = append(got, addr) })

		id.Connect("ST1PRINCIPAL")

		if addr, ok := id.Address(); !ok || addr != "ST1PRINCIPAL" {
			t.Errorf("Address() = %q, %v; want ST1PRINCIPAL, true", addr, ok)
		}
		if len(got) != 1 || got[0] != "ST1PRINCIPAL" {
			t.Errorf("listener calls = %v, want [ST1PRINCIPAL]", got)
		}
	})

	t.Run("disconnect notifies with empty address", func(t *testing.T) {
		id := NewIdentity()
		var got []string
		id.OnChange(func(addr string) { got = append(got, addr) })

		id.Connect("ST1PRINCIPAL")
		id.Disconnect()

		if _, ok := id.Address(); ok {
			t.Error("Address() ok = true after disconnect")
		}
		if len(got) != 2 || got[1] != "" {
			t.Errorf("listener calls = %v, want [ST1PRINCIPAL \"\"]", got)
		}
	})

	t.Run("redundant transitions are silent", func(t *testing.T) {
		id := NewIdentity()
		calls := 0
		id.OnChange(func(string) { calls++ })

		id.Disconnect()
		id.Connect("")
		id.Connect("ST1PRINCIPAL")
		id.Connect("ST1PRINCIPAL")

		if calls != 1 {
			t.Errorf("listener calls = %d, want 1", calls)
		}
	})
}
