package launchd

// KeepAlive is either a plain flag (always keep running / never) or a set of
// conditions. launchd ORs the conditions; nothing here evaluates them.
type KeepAlive = BoolOr[KeepAliveConditions]

// KeepAliveConditions is the dictionary form of KeepAlive.
type KeepAliveConditions struct {
	// SuccessfulExit restarts the job after a zero exit status when true,
	// or after a non-zero one when false.
	SuccessfulExit *bool `plist:"SuccessfulExit,omitempty"`

	// Crashed restarts the job after it exits on a signal when true.
	Crashed *bool `plist:"Crashed,omitempty"`

	// Deprecated: launchd no longer acts on network state.
	NetworkState *bool `plist:"NetworkState,omitempty"`

	// PathState maps a path to the existence sense that keeps the job alive.
	PathState map[string]bool `plist:"PathState,omitempty"`

	// OtherJobEnabled maps a job label to the loaded sense that keeps the
	// job alive.
	OtherJobEnabled map[string]bool `plist:"OtherJobEnabled,omitempty"`

	AfterInitialDemand *bool `plist:"AfterInitialDemand,omitempty"`
}

// KeepAliveFlag returns the boolean form of KeepAlive.
func KeepAliveFlag(always bool) KeepAlive {
	return KeepAlive{flag: always}
}

// KeepAliveWhen returns the conditional form of KeepAlive.
func KeepAliveWhen(c KeepAliveConditions) KeepAlive {
	c.PathState = cloneMap(c.PathState)
	c.OtherJobEnabled = cloneMap(c.OtherJobEnabled)
	return KeepAlive{obj: c, isObj: true}
}

// KeepAliveConditionsBuilder assembles KeepAliveConditions.
type KeepAliveConditionsBuilder struct {
	cond KeepAliveConditions
}

// NewKeepAliveConditionsBuilder returns a builder with no conditions.
func NewKeepAliveConditionsBuilder() *KeepAliveConditionsBuilder {
	return &KeepAliveConditionsBuilder{}
}

// SuccessfulExit keeps the job alive while its last exit was (true) or was not (false) zero.
func (b *KeepAliveConditionsBuilder) SuccessfulExit(v bool) *KeepAliveConditionsBuilder {
	b.cond.SuccessfulExit = &v
	return b
}

// Crashed keeps the job alive while its last exit was (true) or was not (false) a crash.
func (b *KeepAliveConditionsBuilder) Crashed(v bool) *KeepAliveConditionsBuilder {
	b.cond.Crashed = &v
	return b
}

// Deprecated: see KeepAliveConditions.NetworkState.
func (b *KeepAliveConditionsBuilder) NetworkState(v bool) *KeepAliveConditionsBuilder {
	b.cond.NetworkState = &v
	return b
}

// PathState records one path condition; repeated calls accumulate.
func (b *KeepAliveConditionsBuilder) PathState(path string, exists bool) *KeepAliveConditionsBuilder {
	if b.cond.PathState == nil {
		b.cond.PathState = make(map[string]bool)
	}
	b.cond.PathState[path] = exists
	return b
}

// OtherJobEnabled records one peer-job condition; repeated calls accumulate.
func (b *KeepAliveConditionsBuilder) OtherJobEnabled(label string, loaded bool) *KeepAliveConditionsBuilder {
	if b.cond.OtherJobEnabled == nil {
		b.cond.OtherJobEnabled = make(map[string]bool)
	}
	b.cond.OtherJobEnabled[label] = loaded
	return b
}

// AfterInitialDemand defers the other conditions until the job first runs on demand.
func (b *KeepAliveConditionsBuilder) AfterInitialDemand(v bool) *KeepAliveConditionsBuilder {
	b.cond.AfterInitialDemand = &v
	return b
}

// Build returns the conditions; the maps are copied.
func (b *KeepAliveConditionsBuilder) Build() KeepAliveConditions {
	c := b.cond
	c.PathState = cloneMap(c.PathState)
	c.OtherJobEnabled = cloneMap(c.OtherJobEnabled)
	return c
}
