package launchd

import (
	"errors"
)

// ErrMissingLabel is returned by JobBuilder.Build when no label was set.
var ErrMissingLabel = errors.New("launchd: job label is required")

// JobBuilder accumulates Job fields in any order. Each setter is named after
// the Job field it sets. Setters overwrite earlier values, copy slices and
// maps they are given, and never validate combinations of keys.
type JobBuilder struct {
	job Job
}

// NewJobBuilder returns an empty builder.
func NewJobBuilder() *JobBuilder {
	return &JobBuilder{}
}

func (b *JobBuilder) Label(label string) *JobBuilder {
	b.job.Label = label
	return b
}

func (b *JobBuilder) Disabled(v bool) *JobBuilder {
	b.job.Disabled = &v
	return b
}

func (b *JobBuilder) UserName(name string) *JobBuilder {
	b.job.UserName = &name
	return b
}

func (b *JobBuilder) GroupName(name string) *JobBuilder {
	b.job.GroupName = &name
	return b
}

func (b *JobBuilder) InetdCompatibility(v InetdCompatibility) *JobBuilder {
	b.job.InetdCompatibility = &v
	return b
}

// Deprecated: launchd ignores host restrictions.
func (b *JobBuilder) LimitLoadToHosts(hosts ...string) *JobBuilder {
	b.job.LimitLoadToHosts = cloneSlice(hosts)
	return b
}

// Deprecated: launchd ignores host restrictions.
func (b *JobBuilder) LimitLoadFromHosts(hosts ...string) *JobBuilder {
	b.job.LimitLoadFromHosts = cloneSlice(hosts)
	return b
}

func (b *JobBuilder) LimitLoadToSessionType(v OneOrMany[string]) *JobBuilder {
	b.job.LimitLoadToSessionType = &v
	return b
}

func (b *JobBuilder) LimitLoadToHardware(hw map[string][]string) *JobBuilder {
	b.job.LimitLoadToHardware = cloneHardware(hw)
	return b
}

func (b *JobBuilder) LimitLoadFromHardware(hw map[string][]string) *JobBuilder {
	b.job.LimitLoadFromHardware = cloneHardware(hw)
	return b
}

func (b *JobBuilder) Program(path string) *JobBuilder {
	b.job.Program = &path
	return b
}

func (b *JobBuilder) BundleProgram(path string) *JobBuilder {
	b.job.BundleProgram = &path
	return b
}

// ProgramArguments replaces the whole argument vector.
func (b *JobBuilder) ProgramArguments(args ...string) *JobBuilder {
	b.job.ProgramArguments = cloneSlice(args)
	return b
}

// ProgramArgument appends one element to the argument vector.
func (b *JobBuilder) ProgramArgument(arg string) *JobBuilder {
	b.job.ProgramArguments = append(b.job.ProgramArguments, arg)
	return b
}

func (b *JobBuilder) EnableGlobbing(v bool) *JobBuilder {
	b.job.EnableGlobbing = &v
	return b
}

func (b *JobBuilder) EnableTransactions(v bool) *JobBuilder {
	b.job.EnableTransactions = &v
	return b
}

func (b *JobBuilder) EnablePressuredExit(v bool) *JobBuilder {
	b.job.EnablePressuredExit = &v
	return b
}

// Deprecated: use KeepAlive.
func (b *JobBuilder) OnDemand(v bool) *JobBuilder {
	b.job.OnDemand = &v
	return b
}

// Deprecated: no longer read by launchd.
func (b *JobBuilder) ServiceIPC(v bool) *JobBuilder {
	b.job.ServiceIPC = &v
	return b
}

func (b *JobBuilder) KeepAlive(v KeepAlive) *JobBuilder {
	b.job.KeepAlive = &v
	return b
}

func (b *JobBuilder) RunAtLoad(v bool) *JobBuilder {
	b.job.RunAtLoad = &v
	return b
}

func (b *JobBuilder) RootDirectory(dir string) *JobBuilder {
	b.job.RootDirectory = &dir
	return b
}

func (b *JobBuilder) WorkingDirectory(dir string) *JobBuilder {
	b.job.WorkingDirectory = &dir
	return b
}

// EnvironmentVariables replaces the environment map.
func (b *JobBuilder) EnvironmentVariables(env map[string]string) *JobBuilder {
	b.job.EnvironmentVariables = cloneMap(env)
	return b
}

// EnvironmentVariable sets one variable, keeping the others.
func (b *JobBuilder) EnvironmentVariable(key, value string) *JobBuilder {
	if b.job.EnvironmentVariables == nil {
		b.job.EnvironmentVariables = make(map[string]string)
	}
	b.job.EnvironmentVariables[key] = value
	return b
}

func (b *JobBuilder) Umask(v StringOrInteger) *JobBuilder {
	b.job.Umask = &v
	return b
}

// Deprecated: never implemented by launchd.
func (b *JobBuilder) TimeOut(seconds uint32) *JobBuilder {
	b.job.TimeOut = &seconds
	return b
}

func (b *JobBuilder) ExitTimeOut(seconds uint32) *JobBuilder {
	b.job.ExitTimeOut = &seconds
	return b
}

func (b *JobBuilder) ThrottleInterval(seconds uint32) *JobBuilder {
	b.job.ThrottleInterval = &seconds
	return b
}

func (b *JobBuilder) InitGroups(v bool) *JobBuilder {
	b.job.InitGroups = &v
	return b
}

func (b *JobBuilder) WatchPaths(paths ...string) *JobBuilder {
	b.job.WatchPaths = cloneSlice(paths)
	return b
}

func (b *JobBuilder) QueueDirectories(dirs ...string) *JobBuilder {
	b.job.QueueDirectories = cloneSlice(dirs)
	return b
}

func (b *JobBuilder) StartOnMount(v bool) *JobBuilder {
	b.job.StartOnMount = &v
	return b
}

func (b *JobBuilder) StartInterval(seconds uint32) *JobBuilder {
	b.job.StartInterval = &seconds
	return b
}

func (b *JobBuilder) StartCalendarInterval(v OneOrMany[CalendarInterval]) *JobBuilder {
	b.job.StartCalendarInterval = &v
	return b
}

func (b *JobBuilder) StandardInPath(path string) *JobBuilder {
	b.job.StandardInPath = &path
	return b
}

func (b *JobBuilder) StandardOutPath(path string) *JobBuilder {
	b.job.StandardOutPath = &path
	return b
}

func (b *JobBuilder) StandardErrorPath(path string) *JobBuilder {
	b.job.StandardErrorPath = &path
	return b
}

func (b *JobBuilder) Debug(v bool) *JobBuilder {
	b.job.Debug = &v
	return b
}

func (b *JobBuilder) WaitForDebugger(v bool) *JobBuilder {
	b.job.WaitForDebugger = &v
	return b
}

func (b *JobBuilder) SoftResourceLimits(v ResourceLimits) *JobBuilder {
	b.job.SoftResourceLimits = &v
	return b
}

func (b *JobBuilder) HardResourceLimits(v ResourceLimits) *JobBuilder {
	b.job.HardResourceLimits = &v
	return b
}

func (b *JobBuilder) Nice(v int) *JobBuilder {
	b.job.Nice = &v
	return b
}

func (b *JobBuilder) ProcessType(v ProcessType) *JobBuilder {
	b.job.ProcessType = &v
	return b
}

func (b *JobBuilder) AbandonProcessGroup(v bool) *JobBuilder {
	b.job.AbandonProcessGroup = &v
	return b
}

func (b *JobBuilder) LowPriorityIO(v bool) *JobBuilder {
	b.job.LowPriorityIO = &v
	return b
}

func (b *JobBuilder) LowPriorityBackgroundIO(v bool) *JobBuilder {
	b.job.LowPriorityBackgroundIO = &v
	return b
}

func (b *JobBuilder) MaterializeDatalessFiles(v bool) *JobBuilder {
	b.job.MaterializeDatalessFiles = &v
	return b
}

func (b *JobBuilder) LaunchOnlyOnce(v bool) *JobBuilder {
	b.job.LaunchOnlyOnce = &v
	return b
}

// MachService registers one Mach service, keeping the others.
func (b *JobBuilder) MachService(name string, v MachServiceEntry) *JobBuilder {
	if b.job.MachServices == nil {
		b.job.MachServices = make(map[string]MachServiceEntry)
	}
	b.job.MachServices[name] = v
	return b
}

// MachServices replaces the Mach service map.
func (b *JobBuilder) MachServices(services map[string]MachServiceEntry) *JobBuilder {
	b.job.MachServices = cloneMap(services)
	return b
}

// Socket sets one named socket entry, keeping the others.
func (b *JobBuilder) Socket(name string, v OneOrMany[Socket]) *JobBuilder {
	if b.job.Sockets == nil {
		b.job.Sockets = make(map[string]OneOrMany[Socket])
	}
	b.job.Sockets[name] = v
	return b
}

// Sockets replaces the socket map.
func (b *JobBuilder) Sockets(sockets map[string]OneOrMany[Socket]) *JobBuilder {
	b.job.Sockets = cloneMap(sockets)
	return b
}

func (b *JobBuilder) LaunchEvents(events map[string]map[string]map[string]string) *JobBuilder {
	b.job.LaunchEvents = cloneEvents(events)
	return b
}

// Deprecated: no longer implemented.
func (b *JobBuilder) HopefullyExitsLast(v bool) *JobBuilder {
	b.job.HopefullyExitsLast = &v
	return b
}

// Deprecated: no longer implemented.
func (b *JobBuilder) HopefullyExitsFirst(v bool) *JobBuilder {
	b.job.HopefullyExitsFirst = &v
	return b
}

func (b *JobBuilder) SessionCreate(v bool) *JobBuilder {
	b.job.SessionCreate = &v
	return b
}

func (b *JobBuilder) LegacyTimers(v bool) *JobBuilder {
	b.job.LegacyTimers = &v
	return b
}

func (b *JobBuilder) AssociatedBundleIdentifiers(v StringOrArray) *JobBuilder {
	b.job.AssociatedBundleIdentifiers = &v
	return b
}

// Build returns the assembled job. It fails with ErrMissingLabel when the
// label is empty. The returned job shares nothing mutable with the builder.
func (b *JobBuilder) Build() (*Job, error) {
	if b.job.Label == "" {
		return nil, ErrMissingLabel
	}

	job := b.job
	job.LimitLoadToHosts = cloneSlice(job.LimitLoadToHosts)
	job.LimitLoadFromHosts = cloneSlice(job.LimitLoadFromHosts)
	job.LimitLoadToHardware = cloneHardware(job.LimitLoadToHardware)
	job.LimitLoadFromHardware = cloneHardware(job.LimitLoadFromHardware)
	job.ProgramArguments = cloneSlice(job.ProgramArguments)
	job.EnvironmentVariables = cloneMap(job.EnvironmentVariables)
	job.WatchPaths = cloneSlice(job.WatchPaths)
	job.QueueDirectories = cloneSlice(job.QueueDirectories)
	job.MachServices = cloneMap(job.MachServices)
	job.Sockets = cloneMap(job.Sockets)
	job.LaunchEvents = cloneEvents(job.LaunchEvents)
	return &job, nil
}
