package launchd

import (
	"fmt"
)

// InetdCompatibility marks a daemon that expects to be launched as if from
// inetd.
type InetdCompatibility struct {
	// Wait passes the listening socket on stdio when true; when false
	// launchd calls accept(2) and passes the connection instead.
	Wait *bool `plist:"Wait,omitempty"`
}

// InetdCompatibilityBuilder assembles an InetdCompatibility.
type InetdCompatibilityBuilder struct {
	inetd InetdCompatibility
}

// NewInetdCompatibilityBuilder returns an empty builder.
func NewInetdCompatibilityBuilder() *InetdCompatibilityBuilder {
	return &InetdCompatibilityBuilder{}
}

// Wait sets whether the listening socket itself is handed to the job.
func (b *InetdCompatibilityBuilder) Wait(v bool) *InetdCompatibilityBuilder {
	b.inetd.Wait = &v
	return b
}

// Build returns the assembled InetdCompatibility.
func (b *InetdCompatibilityBuilder) Build() InetdCompatibility {
	return b.inetd
}

// MachService is the dictionary form of a MachServices entry. Both keys are
// always written, so an unset field shows up as false.
type MachService struct {
	ResetAtClose     bool `plist:"ResetAtClose"`
	HideUntilCheckIn bool `plist:"HideUntilCheckIn"`
}

// MachServiceEntry is a MachServices value: true to advertise, or a
// MachService dictionary.
type MachServiceEntry = BoolOr[MachService]

// MachServiceFlag returns the boolean form of a MachServices entry.
func MachServiceFlag(advertise bool) MachServiceEntry {
	return MachServiceEntry{flag: advertise}
}

// MachServiceObject returns the dictionary form of a MachServices entry.
func MachServiceObject(s MachService) MachServiceEntry {
	return MachServiceEntry{obj: s, isObj: true}
}

// MachServiceBuilder assembles a MachService.
type MachServiceBuilder struct {
	service MachService
}

// NewMachServiceBuilder returns a builder with both flags false.
func NewMachServiceBuilder() *MachServiceBuilder {
	return &MachServiceBuilder{}
}

// ResetAtClose sets whether the service port is recreated when all clients close.
func (b *MachServiceBuilder) ResetAtClose(v bool) *MachServiceBuilder {
	b.service.ResetAtClose = v
	return b
}

// HideUntilCheckIn sets whether the service stays hidden until the job checks in.
func (b *MachServiceBuilder) HideUntilCheckIn(v bool) *MachServiceBuilder {
	b.service.HideUntilCheckIn = v
	return b
}

// Build returns the assembled MachService.
func (b *MachServiceBuilder) Build() MachService {
	return b.service
}

// SockType is the socket type launchd creates.
type SockType string

const (
	SockStream    SockType = "stream"
	SockDgram     SockType = "dgram"
	SockSeqpacket SockType = "seqpacket"
)

// SockFamily selects the address family of the socket.
type SockFamily string

const (
	FamilyIPv4   SockFamily = "IPv4"
	FamilyIPv6   SockFamily = "IPv6"
	FamilyIPv4v6 SockFamily = "IPv4v6"
	FamilyUnix   SockFamily = "Unix"
)

// SockProtocol is passed to socket(2).
type SockProtocol string

const (
	ProtocolTCP SockProtocol = "TCP"
	ProtocolUDP SockProtocol = "UDP"
)

// Socket describes one launch-on-demand socket. The job checks in with
// launch_activate_socket(3) to receive its descriptors.
//
// SockPathMode is decimal; plists have no octal notation, so 0644 must be
// written as 420.
type Socket struct {
	SockType            *SockType        `plist:"SockType,omitempty"`
	SockPassive         *bool            `plist:"SockPassive,omitempty"`
	SockNodeName        *string          `plist:"SockNodeName,omitempty"`
	SockServiceName     *StringOrInteger `plist:"SockServiceName,omitempty"`
	SockFamily          *SockFamily      `plist:"SockFamily,omitempty"`
	SockProtocol        *SockProtocol    `plist:"SockProtocol,omitempty"`
	SockPathName        *string          `plist:"SockPathName,omitempty"`
	SecureSocketWithKey *string          `plist:"SecureSocketWithKey,omitempty"`
	SockPathOwner       *uint32          `plist:"SockPathOwner,omitempty"`
	SockPathGroup       *uint32          `plist:"SockPathGroup,omitempty"`
	SockPathMode        *uint32          `plist:"SockPathMode,omitempty"`
	Bonjour             *Bonjour         `plist:"Bonjour,omitempty"`
	MulticastGroup      *string          `plist:"MulticastGroup,omitempty"`
}

// SocketBuilder assembles a Socket.
type SocketBuilder struct {
	socket Socket
}

// NewSocketBuilder returns a builder for a socket with launchd defaults.
func NewSocketBuilder() *SocketBuilder {
	return &SocketBuilder{}
}

// Type sets SockType; launchd defaults to stream.
func (b *SocketBuilder) Type(t SockType) *SocketBuilder {
	b.socket.SockType = &t
	return b
}

// Passive sets whether the socket listens (true) or connects.
func (b *SocketBuilder) Passive(v bool) *SocketBuilder {
	b.socket.SockPassive = &v
	return b
}

// NodeName sets the host to listen on or connect to.
func (b *SocketBuilder) NodeName(name string) *SocketBuilder {
	b.socket.SockNodeName = &name
	return b
}

// ServiceName sets a port number or a service name such as "ssh".
func (b *SocketBuilder) ServiceName(v StringOrInteger) *SocketBuilder {
	b.socket.SockServiceName = &v
	return b
}

// Family sets the address family.
func (b *SocketBuilder) Family(f SockFamily) *SocketBuilder {
	b.socket.SockFamily = &f
	return b
}

// Protocol sets the transport protocol.
func (b *SocketBuilder) Protocol(p SockProtocol) *SocketBuilder {
	b.socket.SockProtocol = &p
	return b
}

// PathName sets a Unix domain socket path; it implies FamilyUnix.
func (b *SocketBuilder) PathName(path string) *SocketBuilder {
	b.socket.SockPathName = &path
	return b
}

// SecureSocketWithKey names the environment variable that receives the path
// of a securely generated socket.
func (b *SocketBuilder) SecureSocketWithKey(key string) *SocketBuilder {
	b.socket.SecureSocketWithKey = &key
	return b
}

// PathOwner sets the uid owning the socket file.
func (b *SocketBuilder) PathOwner(uid uint32) *SocketBuilder {
	b.socket.SockPathOwner = &uid
	return b
}

// PathGroup sets the gid owning the socket file.
func (b *SocketBuilder) PathGroup(gid uint32) *SocketBuilder {
	b.socket.SockPathGroup = &gid
	return b
}

// PathMode sets the socket file mode, written in decimal.
func (b *SocketBuilder) PathMode(mode uint32) *SocketBuilder {
	b.socket.SockPathMode = &mode
	return b
}

// Bonjour sets mDNS registration for the socket.
func (b *SocketBuilder) Bonjour(v Bonjour) *SocketBuilder {
	b.socket.Bonjour = &v
	return b
}

// MulticastGroup sets the group to join for a UDP socket.
func (b *SocketBuilder) MulticastGroup(group string) *SocketBuilder {
	b.socket.MulticastGroup = &group
	return b
}

// Build returns the assembled Socket.
func (b *SocketBuilder) Build() Socket {
	return b.socket
}

type bonjourKind int

const (
	bonjourFlag bonjourKind = iota
	bonjourName
	bonjourNames
)

// Bonjour requests registration with mDNS: a flag (name inferred from
// SockServiceName), one service name, or a list of names.
type Bonjour struct {
	kind  bonjourKind
	flag  bool
	names []string
}

// BonjourFlag registers (or not) under the name taken from SockServiceName.
func BonjourFlag(v bool) Bonjour {
	return Bonjour{kind: bonjourFlag, flag: v}
}

// BonjourName registers under one service name.
func BonjourName(name string) Bonjour {
	return Bonjour{kind: bonjourName, names: []string{name}}
}

// BonjourNames registers under each of names.
func BonjourNames(names ...string) Bonjour {
	list := make([]string, len(names))
	copy(list, names)
	return Bonjour{kind: bonjourNames, names: list}
}

// AsBool returns the flag and true when the boolean variant is active.
func (v Bonjour) AsBool() (bool, bool) {
	return v.flag, v.kind == bonjourFlag
}

// AsName returns the name and true when the single-name variant is active.
func (v Bonjour) AsName() (string, bool) {
	if v.kind != bonjourName {
		return "", false
	}
	return v.names[0], true
}

// AsNames returns the names and true when the list variant is active.
func (v Bonjour) AsNames() ([]string, bool) {
	if v.kind != bonjourNames {
		return nil, false
	}
	return append([]string(nil), v.names...), true
}

func (v Bonjour) MarshalPlist() (interface{}, error) {
	switch v.kind {
	case bonjourName:
		return v.names[0], nil
	case bonjourNames:
		return v.names, nil
	default:
		return v.flag, nil
	}
}

func (v *Bonjour) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case bool:
		*v = BonjourFlag(x)
	case string:
		*v = BonjourName(x)
	case []interface{}:
		names := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("unexpected %T in Bonjour name list", item)
			}
			names = append(names, s)
		}
		*v = BonjourNames(names...)
	default:
		return fmt.Errorf("unexpected %T for Bonjour", raw)
	}
	return nil
}
