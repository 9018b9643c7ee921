// Package launchd models the launchd.plist(5) job description and writes it
// out as an XML property list.
package launchd

import (
	"maps"
	"slices"
)

// ProcessType classifies the job so the system can apply matching resource
// limits.
type ProcessType string

const (
	ProcessBackground  ProcessType = "Background"
	ProcessStandard    ProcessType = "Standard"
	ProcessAdaptive    ProcessType = "Adaptive"
	ProcessInteractive ProcessType = "Interactive"
)

// Job is one launchd job description. Label is required; every other field
// is optional and a nil pointer, map or slice is left out of the plist.
//
// Empty maps and slices are treated like nil and omitted as well.
type Job struct {
	// Label uniquely identifies the job to launchd.
	Label string `plist:"Label"`

	// Disabled keeps the job from loading unless overridden through
	// `launchctl enable`.
	Disabled *bool `plist:"Disabled,omitempty"`

	// UserName and GroupName only apply in the system domain.
	UserName  *string `plist:"UserName,omitempty"`
	GroupName *string `plist:"GroupName,omitempty"`

	InetdCompatibility *InetdCompatibility `plist:"InetdCompatibility,omitempty"`

	// Deprecated: launchd ignores host restrictions.
	LimitLoadToHosts []string `plist:"LimitLoadToHosts,omitempty"`
	// Deprecated: launchd ignores host restrictions.
	LimitLoadFromHosts []string `plist:"LimitLoadFromHosts,omitempty"`

	// LimitLoadToSessionType restricts an agent to one or more session
	// types such as "Aqua" or "Background".
	LimitLoadToSessionType *OneOrMany[string] `plist:"LimitLoadToSessionType,omitempty"`

	// LimitLoadToHardware and LimitLoadFromHardware map a "hw" sysctl
	// subdomain (e.g. "model") to allowed or denied values.
	LimitLoadToHardware   map[string][]string `plist:"LimitLoadToHardware,omitempty"`
	LimitLoadFromHardware map[string][]string `plist:"LimitLoadFromHardware,omitempty"`

	// Program is the absolute path passed as the first argument of
	// execv(3). Without it, the first element of ProgramArguments is used.
	Program *string `plist:"Program,omitempty"`

	// BundleProgram is an app-bundle relative executable path; only
	// honoured for plists installed with SMAppService.
	BundleProgram *string `plist:"BundleProgram,omitempty"`

	// ProgramArguments is the argv passed to execvp(3).
	ProgramArguments []string `plist:"ProgramArguments,omitempty"`

	EnableGlobbing      *bool `plist:"EnableGlobbing,omitempty"`
	EnableTransactions  *bool `plist:"EnableTransactions,omitempty"`
	EnablePressuredExit *bool `plist:"EnablePressuredExit,omitempty"`

	// Deprecated: use KeepAlive.
	OnDemand *bool `plist:"OnDemand,omitempty"`
	// Deprecated: no longer read by launchd.
	ServiceIPC *bool `plist:"ServiceIPC,omitempty"`

	KeepAlive *KeepAlive `plist:"KeepAlive,omitempty"`
	RunAtLoad *bool      `plist:"RunAtLoad,omitempty"`

	RootDirectory        *string           `plist:"RootDirectory,omitempty"`
	WorkingDirectory     *string           `plist:"WorkingDirectory,omitempty"`
	EnvironmentVariables map[string]string `plist:"EnvironmentVariables,omitempty"`

	// Umask is a decimal integer, or a string parsed by strtoul(3) so a
	// leading 0 means octal.
	Umask *StringOrInteger `plist:"Umask,omitempty"`

	// Deprecated: never implemented by launchd.
	TimeOut          *uint32 `plist:"TimeOut,omitempty"`
	ExitTimeOut      *uint32 `plist:"ExitTimeOut,omitempty"`
	ThrottleInterval *uint32 `plist:"ThrottleInterval,omitempty"`
	InitGroups       *bool   `plist:"InitGroups,omitempty"`

	WatchPaths            []string                     `plist:"WatchPaths,omitempty"`
	QueueDirectories      []string                     `plist:"QueueDirectories,omitempty"`
	StartOnMount          *bool                        `plist:"StartOnMount,omitempty"`
	StartInterval         *uint32                      `plist:"StartInterval,omitempty"`
	StartCalendarInterval *OneOrMany[CalendarInterval] `plist:"StartCalendarInterval,omitempty"`

	StandardInPath    *string `plist:"StandardInPath,omitempty"`
	StandardOutPath   *string `plist:"StandardOutPath,omitempty"`
	StandardErrorPath *string `plist:"StandardErrorPath,omitempty"`

	Debug           *bool `plist:"Debug,omitempty"`
	WaitForDebugger *bool `plist:"WaitForDebugger,omitempty"`

	SoftResourceLimits *ResourceLimits `plist:"SoftResourceLimits,omitempty"`
	HardResourceLimits *ResourceLimits `plist:"HardResourceLimits,omitempty"`

	Nice        *int         `plist:"Nice,omitempty"`
	ProcessType *ProcessType `plist:"ProcessType,omitempty"`

	AbandonProcessGroup      *bool `plist:"AbandonProcessGroup,omitempty"`
	LowPriorityIO            *bool `plist:"LowPriorityIO,omitempty"`
	LowPriorityBackgroundIO  *bool `plist:"LowPriorityBackgroundIO,omitempty"`
	MaterializeDatalessFiles *bool `plist:"MaterializeDatalessFiles,omitempty"`
	LaunchOnlyOnce           *bool `plist:"LaunchOnlyOnce,omitempty"`

	// MachServices names the services to register in the bootstrap
	// namespace.
	MachServices map[string]MachServiceEntry `plist:"MachServices,omitempty"`

	// Sockets maps an application-chosen name to one or more on-demand
	// sockets.
	Sockets map[string]OneOrMany[Socket] `plist:"Sockets,omitempty"`

	// LaunchEvents maps an event subsystem to named event descriptors.
	LaunchEvents map[string]map[string]map[string]string `plist:"LaunchEvents,omitempty"`

	// Deprecated: no longer implemented.
	HopefullyExitsLast *bool `plist:"HopefullyExitsLast,omitempty"`
	// Deprecated: no longer implemented.
	HopefullyExitsFirst *bool `plist:"HopefullyExitsFirst,omitempty"`

	SessionCreate *bool `plist:"SessionCreate,omitempty"`
	LegacyTimers  *bool `plist:"LegacyTimers,omitempty"`

	// AssociatedBundleIdentifiers ties the job to app bundles in the Login
	// Items UI.
	AssociatedBundleIdentifiers *StringOrArray `plist:"AssociatedBundleIdentifiers,omitempty"`
}

// NewJob returns a job that runs program.
func NewJob(label, program string) (*Job, error) {
	return NewJobBuilder().
		Label(label).
		Program(program).
		Build()
}

// NewJobWithArgs returns a job that runs the given argument vector.
func NewJobWithArgs(label string, args ...string) (*Job, error) {
	return NewJobBuilder().
		Label(label).
		ProgramArguments(args...).
		Build()
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return slices.Clone(s)
}

// cloneHardware copies the map and each value list.
func cloneHardware(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = cloneSlice(v)
	}
	return out
}

// cloneEvents copies all three levels of a LaunchEvents map.
func cloneEvents(m map[string]map[string]map[string]string) map[string]map[string]map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]map[string]map[string]string, len(m))
	for subsystem, events := range m {
		if events == nil {
			out[subsystem] = nil
			continue
		}
		inner := make(map[string]map[string]string, len(events))
		for name, desc := range events {
			inner[name] = cloneMap(desc)
		}
		out[subsystem] = inner
	}
	return out
}
