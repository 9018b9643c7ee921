package launchd

// ResourceLimits adjusts the values set with setrlimit(2) for the job.
// Every field is optional; nil fields are left at the system default.
type ResourceLimits struct {
	Core              *uint64 `plist:"Core,omitempty"`
	CPU               *uint64 `plist:"CPU,omitempty"`
	Data              *uint64 `plist:"Data,omitempty"`
	FileSize          *uint64 `plist:"FileSize,omitempty"`
	MemoryLock        *uint64 `plist:"MemoryLock,omitempty"`
	NumberOfFiles     *uint64 `plist:"NumberOfFiles,omitempty"`
	NumberOfProcesses *uint64 `plist:"NumberOfProcesses,omitempty"`
	ResidentSetSize   *uint64 `plist:"ResidentSetSize,omitempty"`
	Stack             *uint64 `plist:"Stack,omitempty"`
}

// ResourceLimitsBuilder assembles a ResourceLimits value.
type ResourceLimitsBuilder struct {
	limits ResourceLimits
}

// NewResourceLimitsBuilder returns an empty builder.
func NewResourceLimitsBuilder() *ResourceLimitsBuilder {
	return &ResourceLimitsBuilder{}
}

// Core sets the largest core file size in bytes.
func (b *ResourceLimitsBuilder) Core(n uint64) *ResourceLimitsBuilder {
	b.limits.Core = &n
	return b
}

// CPU sets the maximum CPU time in seconds.
func (b *ResourceLimitsBuilder) CPU(n uint64) *ResourceLimitsBuilder {
	b.limits.CPU = &n
	return b
}

// Data sets the maximum data segment size in bytes.
func (b *ResourceLimitsBuilder) Data(n uint64) *ResourceLimitsBuilder {
	b.limits.Data = &n
	return b
}

// FileSize sets the largest file the job may create, in bytes.
func (b *ResourceLimitsBuilder) FileSize(n uint64) *ResourceLimitsBuilder {
	b.limits.FileSize = &n
	return b
}

// MemoryLock sets the maximum bytes that may be locked into memory.
func (b *ResourceLimitsBuilder) MemoryLock(n uint64) *ResourceLimitsBuilder {
	b.limits.MemoryLock = &n
	return b
}

// NumberOfFiles sets the maximum number of open file descriptors.
func (b *ResourceLimitsBuilder) NumberOfFiles(n uint64) *ResourceLimitsBuilder {
	b.limits.NumberOfFiles = &n
	return b
}

// NumberOfProcesses sets the maximum simultaneous processes for the UID.
func (b *ResourceLimitsBuilder) NumberOfProcesses(n uint64) *ResourceLimitsBuilder {
	b.limits.NumberOfProcesses = &n
	return b
}

// ResidentSetSize sets the maximum resident set size in bytes.
func (b *ResourceLimitsBuilder) ResidentSetSize(n uint64) *ResourceLimitsBuilder {
	b.limits.ResidentSetSize = &n
	return b
}

// Stack sets the maximum stack segment size in bytes.
func (b *ResourceLimitsBuilder) Stack(n uint64) *ResourceLimitsBuilder {
	b.limits.Stack = &n
	return b
}

// Build returns the assembled limits. Later setter calls on b do not affect
// the returned value.
func (b *ResourceLimitsBuilder) Build() ResourceLimits {
	return b.limits
}
