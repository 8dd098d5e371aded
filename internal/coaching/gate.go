package coaching

// UpsellGate decides when a requested action is replaced by an upgrade
// offer. It observes the quota tracker and the guided index's unlock
// threshold; it never blocks subscribers.
type UpsellGate struct {
	quota  *QuotaTracker
	guided *GuidedIndex
}

// NewUpsellGate creates a gate over the visit's quota and guided index.
// guided may be nil for programs without guided content.
func NewUpsellGate(quota *QuotaTracker, guided *GuidedIndex) *UpsellGate {
	return &UpsellGate{quota: quota, guided: guided}
}

// InterceptAsk reports whether a free-form dispatch must be replaced by
// the upgrade offer. Evaluated before any network call.
func (g *UpsellGate) InterceptAsk() bool {
	return !g.quota.HasCredits()
}

// InterceptGuided reports whether revealing the guided answer at the
// given ordinal index must be replaced by the upgrade offer.
func (g *UpsellGate) InterceptGuided(index int) bool {
	if g.guided == nil {
		return false
	}
	return g.guided.Locked(index, g.quota.State().Subscribed)
}

// AcceptOffer is called when the learner takes the upgrade. Subscribing
// disables the gate for the remainder of the visit; the flag is trusted
// client-side and not re-checked against a backend here.
func (g *UpsellGate) AcceptOffer() {
	g.quota.Subscribe()
}
