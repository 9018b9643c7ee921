// Package jobfile reads YAML (or JSON) job definitions and builds launchd
// jobs from them.
package jobfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"launchkit/internal/launchd"
	"launchkit/internal/schedule"
)

var (
	// ErrEmpty is returned for a document with no content.
	ErrEmpty = errors.New("jobfile: empty definition")
	// ErrEnvFileNotAllowed is returned when a definition names an env_file
	// but has no base directory, as with definitions received over HTTP.
	ErrEnvFileNotAllowed = errors.New("jobfile: env_file is only allowed in definition files")
)

// Decode parses a definition document. Unknown keys are rejected.
func Decode(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to parse job definition: %w", err)
	}
	return &def, nil
}

// Parse decodes a definition and builds the job. Relative env_file paths
// resolve against baseDir; with an empty baseDir env_file is refused.
func Parse(data []byte, baseDir string) (*launchd.Job, error) {
	def, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return def.Build(baseDir)
}

// ParseFile reads and builds the definition at path.
func ParseFile(path string) (*launchd.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job definition %s: %w", path, err)
	}

	job, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return job, nil
}

// Build turns the definition into a job. A missing label fails with
// launchd.ErrMissingLabel.
func (d *Definition) Build(baseDir string) (*launchd.Job, error) {
	b := launchd.NewJobBuilder().Label(d.Label)

	setBool(d.Disabled, b.Disabled)
	setString(d.UserName, b.UserName)
	setString(d.GroupName, b.GroupName)
	if d.InetdCompatibility != nil {
		inetd := launchd.NewInetdCompatibilityBuilder()
		if d.InetdCompatibility.Wait != nil {
			inetd.Wait(*d.InetdCompatibility.Wait)
		}
		b.InetdCompatibility(inetd.Build())
	}
	if d.LimitLoadToHosts != nil {
		b.LimitLoadToHosts(d.LimitLoadToHosts...)
	}
	if d.LimitLoadFromHosts != nil {
		b.LimitLoadFromHosts(d.LimitLoadFromHosts...)
	}
	if present(d.LimitLoadToSessionType) {
		v, err := decodeStringOrArray(&d.LimitLoadToSessionType)
		if err != nil {
			return nil, fieldError("limit_load_to_session_type", err)
		}
		b.LimitLoadToSessionType(v)
	}
	if d.LimitLoadToHardware != nil {
		b.LimitLoadToHardware(d.LimitLoadToHardware)
	}
	if d.LimitLoadFromHardware != nil {
		b.LimitLoadFromHardware(d.LimitLoadFromHardware)
	}

	setString(d.Program, b.Program)
	setString(d.BundleProgram, b.BundleProgram)
	for _, arg := range d.ProgramArguments {
		b.ProgramArgument(arg)
	}
	setBool(d.EnableGlobbing, b.EnableGlobbing)
	setBool(d.EnableTransactions, b.EnableTransactions)
	setBool(d.EnablePressuredExit, b.EnablePressuredExit)
	setBool(d.OnDemand, b.OnDemand)
	setBool(d.ServiceIPC, b.ServiceIPC)
	if present(d.KeepAlive) {
		v, err := decodeKeepAlive(&d.KeepAlive)
		if err != nil {
			return nil, fieldError("keep_alive", err)
		}
		b.KeepAlive(v)
	}
	setBool(d.RunAtLoad, b.RunAtLoad)

	setString(d.RootDirectory, b.RootDirectory)
	setString(d.WorkingDirectory, b.WorkingDirectory)
	if err := d.applyEnvironment(b, baseDir); err != nil {
		return nil, err
	}
	if present(d.Umask) {
		v, err := decodeStringOrInteger(&d.Umask)
		if err != nil {
			return nil, fieldError("umask", err)
		}
		b.Umask(v)
	}

	setUint32(d.TimeOut, b.TimeOut)
	setUint32(d.ExitTimeOut, b.ExitTimeOut)
	setUint32(d.ThrottleInterval, b.ThrottleInterval)
	setBool(d.InitGroups, b.InitGroups)

	if d.WatchPaths != nil {
		b.WatchPaths(d.WatchPaths...)
	}
	if d.QueueDirectories != nil {
		b.QueueDirectories(d.QueueDirectories...)
	}
	setBool(d.StartOnMount, b.StartOnMount)
	if err := d.applyTriggers(b); err != nil {
		return nil, err
	}

	setString(d.StandardInPath, b.StandardInPath)
	setString(d.StandardOutPath, b.StandardOutPath)
	setString(d.StandardErrorPath, b.StandardErrorPath)
	setBool(d.Debug, b.Debug)
	setBool(d.WaitForDebugger, b.WaitForDebugger)

	if d.SoftResourceLimits != nil {
		b.SoftResourceLimits(d.SoftResourceLimits.build())
	}
	if d.HardResourceLimits != nil {
		b.HardResourceLimits(d.HardResourceLimits.build())
	}
	if d.Nice != nil {
		b.Nice(*d.Nice)
	}
	if d.ProcessType != nil {
		pt, err := processType(*d.ProcessType)
		if err != nil {
			return nil, fieldError("process_type", err)
		}
		b.ProcessType(pt)
	}

	setBool(d.AbandonProcessGroup, b.AbandonProcessGroup)
	setBool(d.LowPriorityIO, b.LowPriorityIO)
	setBool(d.LowPriorityBackgroundIO, b.LowPriorityBackgroundIO)
	setBool(d.MaterializeDatalessFiles, b.MaterializeDatalessFiles)
	setBool(d.LaunchOnlyOnce, b.LaunchOnlyOnce)

	for name, node := range d.MachServices {
		v, err := decodeMachService(&node)
		if err != nil {
			return nil, fieldError("mach_services."+name, err)
		}
		b.MachService(name, v)
	}
	for name, node := range d.Sockets {
		v, err := decodeSockets(&node)
		if err != nil {
			return nil, fieldError("sockets."+name, err)
		}
		b.Socket(name, v)
	}
	if d.LaunchEvents != nil {
		b.LaunchEvents(d.LaunchEvents)
	}

	setBool(d.HopefullyExitsLast, b.HopefullyExitsLast)
	setBool(d.HopefullyExitsFirst, b.HopefullyExitsFirst)
	setBool(d.SessionCreate, b.SessionCreate)
	setBool(d.LegacyTimers, b.LegacyTimers)
	if present(d.AssociatedBundleIdentifiers) {
		v, err := decodeStringOrArray(&d.AssociatedBundleIdentifiers)
		if err != nil {
			return nil, fieldError("associated_bundle_identifiers", err)
		}
		b.AssociatedBundleIdentifiers(v)
	}

	return b.Build()
}

// applyEnvironment loads env_file first so explicit entries override it.
func (d *Definition) applyEnvironment(b *launchd.JobBuilder, baseDir string) error {
	if d.EnvFile != "" {
		if baseDir == "" {
			return ErrEnvFileNotAllowed
		}
		path := d.EnvFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		vars, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read env_file %s: %w", path, err)
		}
		for k, v := range vars {
			b.EnvironmentVariable(k, v)
		}
	}
	for k, v := range d.EnvironmentVariables {
		b.EnvironmentVariable(k, v)
	}
	return nil
}

// applyTriggers merges start_calendar_interval with cron schedules. An
// explicit start_interval wins over "@every".
func (d *Definition) applyTriggers(b *launchd.JobBuilder) error {
	var intervals []launchd.CalendarInterval
	single := false
	if present(d.StartCalendarInterval) {
		v, err := decodeCalendar(&d.StartCalendarInterval)
		if err != nil {
			return fieldError("start_calendar_interval", err)
		}
		intervals = v.Values()
		single = !v.IsMany()
	}

	var every *uint32
	for _, expr := range d.Schedule {
		trig, err := schedule.Parse(expr)
		if err != nil {
			return fieldError("schedule", err)
		}
		if trig.Every > 0 {
			secs := trig.Every
			every = &secs
			continue
		}
		intervals = append(intervals, trig.Intervals...)
		single = false
	}

	switch {
	case d.StartInterval != nil:
		b.StartInterval(*d.StartInterval)
	case every != nil:
		b.StartInterval(*every)
	}

	switch {
	case single && len(intervals) == 1:
		b.StartCalendarInterval(launchd.One(intervals[0]))
	case len(intervals) > 0:
		b.StartCalendarInterval(launchd.Many(intervals...))
	}
	return nil
}

func fieldError(field string, err error) error {
	return fmt.Errorf("invalid %s: %w", field, err)
}

func setBool(v *bool, set func(bool) *launchd.JobBuilder) {
	if v != nil {
		set(*v)
	}
}

func setString(v *string, set func(string) *launchd.JobBuilder) {
	if v != nil {
		set(*v)
	}
}

func setUint32(v *uint32, set func(uint32) *launchd.JobBuilder) {
	if v != nil {
		set(*v)
	}
}
