package jobfile

import (
	"gopkg.in/yaml.v3"
)

// Definition is the on-disk form of a job. Keys are the snake_case names of
// the launchd keys. Fields typed yaml.Node accept more than one shape.
type Definition struct {
	Label                  string              `yaml:"label"`
	Disabled               *bool               `yaml:"disabled"`
	UserName               *string             `yaml:"user_name"`
	GroupName              *string             `yaml:"group_name"`
	InetdCompatibility     *inetdDefinition    `yaml:"inetd_compatibility"`
	LimitLoadToHosts       []string            `yaml:"limit_load_to_hosts"`
	LimitLoadFromHosts     []string            `yaml:"limit_load_from_hosts"`
	LimitLoadToSessionType yaml.Node           `yaml:"limit_load_to_session_type"`
	LimitLoadToHardware    map[string][]string `yaml:"limit_load_to_hardware"`
	LimitLoadFromHardware  map[string][]string `yaml:"limit_load_from_hardware"`

	Program          *string  `yaml:"program"`
	BundleProgram    *string  `yaml:"bundle_program"`
	ProgramArguments []string `yaml:"program_arguments"`
	EnableGlobbing   *bool    `yaml:"enable_globbing"`

	EnableTransactions  *bool     `yaml:"enable_transactions"`
	EnablePressuredExit *bool     `yaml:"enable_pressured_exit"`
	OnDemand            *bool     `yaml:"on_demand"`
	ServiceIPC          *bool     `yaml:"service_ipc"`
	KeepAlive           yaml.Node `yaml:"keep_alive"`
	RunAtLoad           *bool     `yaml:"run_at_load"`

	RootDirectory        *string           `yaml:"root_directory"`
	WorkingDirectory     *string           `yaml:"working_directory"`
	EnvFile              string            `yaml:"env_file"`
	EnvironmentVariables map[string]string `yaml:"environment_variables"`
	Umask                yaml.Node         `yaml:"umask"`

	TimeOut          *uint32 `yaml:"time_out"`
	ExitTimeOut      *uint32 `yaml:"exit_time_out"`
	ThrottleInterval *uint32 `yaml:"throttle_interval"`
	InitGroups       *bool   `yaml:"init_groups"`

	WatchPaths            []string  `yaml:"watch_paths"`
	QueueDirectories      []string  `yaml:"queue_directories"`
	StartOnMount          *bool     `yaml:"start_on_mount"`
	StartInterval         *uint32   `yaml:"start_interval"`
	StartCalendarInterval yaml.Node `yaml:"start_calendar_interval"`
	Schedule              []string  `yaml:"schedule"`

	StandardInPath    *string `yaml:"standard_in_path"`
	StandardOutPath   *string `yaml:"standard_out_path"`
	StandardErrorPath *string `yaml:"standard_error_path"`
	Debug             *bool   `yaml:"debug"`
	WaitForDebugger   *bool   `yaml:"wait_for_debugger"`

	SoftResourceLimits *limitsDefinition `yaml:"soft_resource_limits"`
	HardResourceLimits *limitsDefinition `yaml:"hard_resource_limits"`
	Nice               *int              `yaml:"nice"`
	ProcessType        *string           `yaml:"process_type"`

	AbandonProcessGroup      *bool `yaml:"abandon_process_group"`
	LowPriorityIO            *bool `yaml:"low_priority_io"`
	LowPriorityBackgroundIO  *bool `yaml:"low_priority_background_io"`
	MaterializeDatalessFiles *bool `yaml:"materialize_dataless_files"`
	LaunchOnlyOnce           *bool `yaml:"launch_only_once"`

	MachServices map[string]yaml.Node                   `yaml:"mach_services"`
	Sockets      map[string]yaml.Node                   `yaml:"sockets"`
	LaunchEvents map[string]map[string]map[string]string `yaml:"launch_events"`

	HopefullyExitsLast          *bool     `yaml:"hopefully_exits_last"`
	HopefullyExitsFirst         *bool     `yaml:"hopefully_exits_first"`
	SessionCreate               *bool     `yaml:"session_create"`
	LegacyTimers                *bool     `yaml:"legacy_timers"`
	AssociatedBundleIdentifiers yaml.Node `yaml:"associated_bundle_identifiers"`
}

type inetdDefinition struct {
	Wait *bool `yaml:"wait"`
}

type limitsDefinition struct {
	Core              *uint64 `yaml:"core"`
	CPU               *uint64 `yaml:"cpu"`
	Data              *uint64 `yaml:"data"`
	FileSize          *uint64 `yaml:"file_size"`
	MemoryLock        *uint64 `yaml:"memory_lock"`
	NumberOfFiles     *uint64 `yaml:"number_of_files"`
	NumberOfProcesses *uint64 `yaml:"number_of_processes"`
	ResidentSetSize   *uint64 `yaml:"resident_set_size"`
	Stack             *uint64 `yaml:"stack"`
}

type calendarDefinition struct {
	Minute  *int `yaml:"minute"`
	Hour    *int `yaml:"hour"`
	Day     *int `yaml:"day"`
	Weekday *int `yaml:"weekday"`
	Month   *int `yaml:"month"`
}

type keepAliveDefinition struct {
	SuccessfulExit     *bool           `yaml:"successful_exit"`
	Crashed            *bool           `yaml:"crashed"`
	NetworkState       *bool           `yaml:"network_state"`
	PathState          map[string]bool `yaml:"path_state"`
	OtherJobEnabled    map[string]bool `yaml:"other_job_enabled"`
	AfterInitialDemand *bool           `yaml:"after_initial_demand"`
}

type machServiceDefinition struct {
	ResetAtClose     bool `yaml:"reset_at_close"`
	HideUntilCheckIn bool `yaml:"hide_until_check_in"`
}

type socketDefinition struct {
	SockType            *string   `yaml:"sock_type"`
	SockPassive         *bool     `yaml:"sock_passive"`
	SockNodeName        *string   `yaml:"sock_node_name"`
	SockServiceName     yaml.Node `yaml:"sock_service_name"`
	SockFamily          *string   `yaml:"sock_family"`
	SockProtocol        *string   `yaml:"sock_protocol"`
	SockPathName        *string   `yaml:"sock_path_name"`
	SecureSocketWithKey *string   `yaml:"secure_socket_with_key"`
	SockPathOwner       *uint32   `yaml:"sock_path_owner"`
	SockPathGroup       *uint32   `yaml:"sock_path_group"`
	SockPathMode        *uint32   `yaml:"sock_path_mode"`
	Bonjour             yaml.Node `yaml:"bonjour"`
	MulticastGroup      *string   `yaml:"multicast_group"`
}
