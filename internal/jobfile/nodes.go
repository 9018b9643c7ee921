package jobfile

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"launchkit/internal/launchd"
)

const (
	tagBool = "!!bool"
	tagInt  = "!!int"
	tagStr  = "!!str"
)

// present reports whether the key appeared in the document.
func present(n yaml.Node) bool {
	return n.Kind != 0
}

// decodeStrict decodes a nested node rejecting unknown keys. Node.Decode
// does not inherit KnownFields from the document decoder, so the node is
// re-encoded and run through a strict decoder.
func decodeStrict(n *yaml.Node, out interface{}) error {
	data, err := yaml.Marshal(n)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("value at line %d: %w", n.Line, err)
	}
	return nil
}

func isScalar(n *yaml.Node, tag string) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == tag
}

// decodeStringOrInteger reads an integer when the scalar resolves to one;
// quoted numerals stay strings.
func decodeStringOrInteger(n *yaml.Node) (launchd.StringOrInteger, error) {
	switch {
	case isScalar(n, tagInt):
		var v uint64
		if err := n.Decode(&v); err != nil {
			return launchd.StringOrInteger{}, err
		}
		return launchd.IntegerValue(v), nil
	case isScalar(n, tagStr):
		return launchd.StringValue(n.Value), nil
	default:
		return launchd.StringOrInteger{}, fmt.Errorf("line %d: expected integer or string", n.Line)
	}
}

func decodeStringOrArray(n *yaml.Node) (launchd.StringOrArray, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		var s string
		if err := n.Decode(&s); err != nil {
			return launchd.StringOrArray{}, err
		}
		return launchd.One(s), nil
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return launchd.StringOrArray{}, err
		}
		return launchd.Many(list...), nil
	default:
		return launchd.StringOrArray{}, fmt.Errorf("line %d: expected string or list of strings", n.Line)
	}
}

func decodeKeepAlive(n *yaml.Node) (launchd.KeepAlive, error) {
	if isScalar(n, tagBool) {
		var v bool
		if err := n.Decode(&v); err != nil {
			return launchd.KeepAlive{}, err
		}
		return launchd.KeepAliveFlag(v), nil
	}
	if n.Kind != yaml.MappingNode {
		return launchd.KeepAlive{}, fmt.Errorf("line %d: expected boolean or mapping", n.Line)
	}

	var def keepAliveDefinition
	if err := decodeStrict(n, &def); err != nil {
		return launchd.KeepAlive{}, err
	}
	return launchd.KeepAliveWhen(launchd.KeepAliveConditions{
		SuccessfulExit:     def.SuccessfulExit,
		Crashed:            def.Crashed,
		NetworkState:       def.NetworkState,
		PathState:          def.PathState,
		OtherJobEnabled:    def.OtherJobEnabled,
		AfterInitialDemand: def.AfterInitialDemand,
	}), nil
}

func decodeMachService(n *yaml.Node) (launchd.MachServiceEntry, error) {
	if isScalar(n, tagBool) {
		var v bool
		if err := n.Decode(&v); err != nil {
			return launchd.MachServiceEntry{}, err
		}
		return launchd.MachServiceFlag(v), nil
	}
	if n.Kind != yaml.MappingNode {
		return launchd.MachServiceEntry{}, fmt.Errorf("line %d: expected boolean or mapping", n.Line)
	}

	var def machServiceDefinition
	if err := decodeStrict(n, &def); err != nil {
		return launchd.MachServiceEntry{}, err
	}
	return launchd.MachServiceObject(launchd.NewMachServiceBuilder().
		ResetAtClose(def.ResetAtClose).
		HideUntilCheckIn(def.HideUntilCheckIn).
		Build()), nil
}

func decodeCalendar(n *yaml.Node) (launchd.OneOrMany[launchd.CalendarInterval], error) {
	switch n.Kind {
	case yaml.MappingNode:
		var def calendarDefinition
		if err := decodeStrict(n, &def); err != nil {
			return launchd.OneOrMany[launchd.CalendarInterval]{}, err
		}
		return launchd.One(def.build()), nil
	case yaml.SequenceNode:
		var defs []calendarDefinition
		if err := decodeStrict(n, &defs); err != nil {
			return launchd.OneOrMany[launchd.CalendarInterval]{}, err
		}
		intervals := make([]launchd.CalendarInterval, 0, len(defs))
		for _, def := range defs {
			intervals = append(intervals, def.build())
		}
		return launchd.Many(intervals...), nil
	default:
		return launchd.OneOrMany[launchd.CalendarInterval]{}, fmt.Errorf("line %d: expected mapping or list of mappings", n.Line)
	}
}

func decodeSockets(n *yaml.Node) (launchd.OneOrMany[launchd.Socket], error) {
	switch n.Kind {
	case yaml.MappingNode:
		var def socketDefinition
		if err := decodeStrict(n, &def); err != nil {
			return launchd.OneOrMany[launchd.Socket]{}, err
		}
		sock, err := def.build()
		if err != nil {
			return launchd.OneOrMany[launchd.Socket]{}, err
		}
		return launchd.One(sock), nil
	case yaml.SequenceNode:
		var defs []socketDefinition
		if err := decodeStrict(n, &defs); err != nil {
			return launchd.OneOrMany[launchd.Socket]{}, err
		}
		socks := make([]launchd.Socket, 0, len(defs))
		for i, def := range defs {
			sock, err := def.build()
			if err != nil {
				return launchd.OneOrMany[launchd.Socket]{}, fmt.Errorf("entry %d: %w", i, err)
			}
			socks = append(socks, sock)
		}
		return launchd.Many(socks...), nil
	default:
		return launchd.OneOrMany[launchd.Socket]{}, fmt.Errorf("line %d: expected mapping or list of mappings", n.Line)
	}
}

func decodeBonjour(n *yaml.Node) (launchd.Bonjour, error) {
	switch {
	case isScalar(n, tagBool):
		var v bool
		if err := n.Decode(&v); err != nil {
			return launchd.Bonjour{}, err
		}
		return launchd.BonjourFlag(v), nil
	case n.Kind == yaml.ScalarNode:
		return launchd.BonjourName(n.Value), nil
	case n.Kind == yaml.SequenceNode:
		var names []string
		if err := n.Decode(&names); err != nil {
			return launchd.Bonjour{}, err
		}
		return launchd.BonjourNames(names...), nil
	default:
		return launchd.Bonjour{}, fmt.Errorf("line %d: expected boolean, name or list of names", n.Line)
	}
}

func (d calendarDefinition) build() launchd.CalendarInterval {
	b := launchd.NewCalendarIntervalBuilder()
	if d.Minute != nil {
		b.Minute(*d.Minute)
	}
	if d.Hour != nil {
		b.Hour(*d.Hour)
	}
	if d.Day != nil {
		b.Day(*d.Day)
	}
	if d.Weekday != nil {
		b.Weekday(*d.Weekday)
	}
	if d.Month != nil {
		b.Month(*d.Month)
	}
	return b.Build()
}

func (d limitsDefinition) build() launchd.ResourceLimits {
	return launchd.ResourceLimits{
		Core:              d.Core,
		CPU:               d.CPU,
		Data:              d.Data,
		FileSize:          d.FileSize,
		MemoryLock:        d.MemoryLock,
		NumberOfFiles:     d.NumberOfFiles,
		NumberOfProcesses: d.NumberOfProcesses,
		ResidentSetSize:   d.ResidentSetSize,
		Stack:             d.Stack,
	}
}

func (d socketDefinition) build() (launchd.Socket, error) {
	b := launchd.NewSocketBuilder()
	if d.SockType != nil {
		t, err := oneOf(*d.SockType, launchd.SockStream, launchd.SockDgram, launchd.SockSeqpacket)
		if err != nil {
			return launchd.Socket{}, fmt.Errorf("sock_type: %w", err)
		}
		b.Type(t)
	}
	if d.SockPassive != nil {
		b.Passive(*d.SockPassive)
	}
	if d.SockNodeName != nil {
		b.NodeName(*d.SockNodeName)
	}
	if present(d.SockServiceName) {
		v, err := decodeStringOrInteger(&d.SockServiceName)
		if err != nil {
			return launchd.Socket{}, fmt.Errorf("sock_service_name: %w", err)
		}
		b.ServiceName(v)
	}
	if d.SockFamily != nil {
		f, err := oneOf(*d.SockFamily, launchd.FamilyIPv4, launchd.FamilyIPv6, launchd.FamilyIPv4v6, launchd.FamilyUnix)
		if err != nil {
			return launchd.Socket{}, fmt.Errorf("sock_family: %w", err)
		}
		b.Family(f)
	}
	if d.SockProtocol != nil {
		p, err := oneOf(*d.SockProtocol, launchd.ProtocolTCP, launchd.ProtocolUDP)
		if err != nil {
			return launchd.Socket{}, fmt.Errorf("sock_protocol: %w", err)
		}
		b.Protocol(p)
	}
	if d.SockPathName != nil {
		b.PathName(*d.SockPathName)
	}
	if d.SecureSocketWithKey != nil {
		b.SecureSocketWithKey(*d.SecureSocketWithKey)
	}
	if d.SockPathOwner != nil {
		b.PathOwner(*d.SockPathOwner)
	}
	if d.SockPathGroup != nil {
		b.PathGroup(*d.SockPathGroup)
	}
	if d.SockPathMode != nil {
		b.PathMode(*d.SockPathMode)
	}
	if present(d.Bonjour) {
		v, err := decodeBonjour(&d.Bonjour)
		if err != nil {
			return launchd.Socket{}, fmt.Errorf("bonjour: %w", err)
		}
		b.Bonjour(v)
	}
	if d.MulticastGroup != nil {
		b.MulticastGroup(*d.MulticastGroup)
	}
	return b.Build(), nil
}

func processType(s string) (launchd.ProcessType, error) {
	return oneOf(s,
		launchd.ProcessBackground,
		launchd.ProcessStandard,
		launchd.ProcessAdaptive,
		launchd.ProcessInteractive,
	)
}

func oneOf[T ~string](s string, allowed ...T) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown value %q (want one of %v)", s, allowed)
}
