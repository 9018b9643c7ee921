package launchd

import (
	"reflect"
	"testing"

	"howett.net/plist"
)

type unionDoc struct {
	Mode     *StringOrInteger             `plist:"Mode,omitempty"`
	Names    *StringOrArray               `plist:"Names,omitempty"`
	Service  *MachServiceEntry            `plist:"Service,omitempty"`
	Alive    *KeepAlive                   `plist:"Alive,omitempty"`
	Sockets  *OneOrMany[Socket]           `plist:"Sockets,omitempty"`
	Calendar *OneOrMany[CalendarInterval] `plist:"Calendar,omitempty"`
	Bonjour  *Bonjour                     `plist:"Bonjour,omitempty"`
}

func roundTrip(t *testing.T, in unionDoc) (unionDoc, map[string]interface{}) {
	t.Helper()
	data, err := plist.Marshal(in, plist.XMLFormat)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	var out unionDoc
	if _, err := plist.Unmarshal(data, &out); err != nil {
		t.Fatalf("failed to decode: %v\n%s", err, data)
	}
	return out, decodeDict(t, data)
}

func TestStringOrInteger_Variants(t *testing.T) {
	out, raw := roundTrip(t, unionDoc{Mode: ptr(IntegerValue(18))})
	if n, ok := out.Mode.AsInteger(); !ok || n != 18 {
		t.Fatalf("expected integer 18, got %v %v", n, ok)
	}
	if raw["Mode"] != uint64(18) {
		t.Fatalf("expected bare integer, got %v (%T)", raw["Mode"], raw["Mode"])
	}

	out, raw = roundTrip(t, unionDoc{Mode: ptr(StringValue("ssh"))})
	if s, ok := out.Mode.AsString(); !ok || s != "ssh" {
		t.Fatalf("expected string ssh, got %q %v", s, ok)
	}
	if raw["Mode"] != "ssh" {
		t.Fatalf("expected bare string, got %v (%T)", raw["Mode"], raw["Mode"])
	}
}

func TestStringOrInteger_NumeralStringStaysString(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict>
<key>Mode</key><string>022</string>
</dict></plist>`

	var out unionDoc
	if _, err := plist.Unmarshal([]byte(doc), &out); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if _, ok := out.Mode.AsInteger(); ok {
		t.Fatalf("numeral <string> must not decode as the integer variant")
	}
	if s, _ := out.Mode.AsString(); s != "022" {
		t.Fatalf("expected %q, got %q", "022", s)
	}

	doc = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict>
<key>Mode</key><integer>22</integer>
</dict></plist>`
	out = unionDoc{}
	if _, err := plist.Unmarshal([]byte(doc), &out); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if n, ok := out.Mode.AsInteger(); !ok || n != 22 {
		t.Fatalf("expected integer 22, got %v %v", n, ok)
	}
}

func TestOneOrMany_Variants(t *testing.T) {
	out, raw := roundTrip(t, unionDoc{Names: ptr(One("com.example.app"))})
	if out.Names.IsMany() {
		t.Fatalf("expected single variant")
	}
	if raw["Names"] != "com.example.app" {
		t.Fatalf("expected bare string, got %v", raw["Names"])
	}

	out, raw = roundTrip(t, unionDoc{Names: ptr(Many("com.example.app"))})
	if !out.Names.IsMany() {
		t.Fatalf("one-element list must stay a list")
	}
	if !reflect.DeepEqual(out.Names.Values(), []string{"com.example.app"}) {
		t.Fatalf("unexpected values: %v", out.Names.Values())
	}
	if _, ok := raw["Names"].([]interface{}); !ok {
		t.Fatalf("expected bare array, got %T", raw["Names"])
	}
}

func TestOneOrMany_Structs(t *testing.T) {
	morning := NewCalendarIntervalBuilder().Hour(9).Minute(0).Build()
	evening := NewCalendarIntervalBuilder().Hour(21).Minute(30).Build()

	out, raw := roundTrip(t, unionDoc{Calendar: ptr(Many(morning, evening))})
	if !reflect.DeepEqual(out.Calendar.Values(), []CalendarInterval{morning, evening}) {
		t.Fatalf("unexpected intervals: %+v", out.Calendar.Values())
	}
	if list, ok := raw["Calendar"].([]interface{}); !ok || len(list) != 2 {
		t.Fatalf("expected two-element array, got %v", raw["Calendar"])
	}

	sock := NewSocketBuilder().PathName("/tmp/example.sock").Build()
	out, raw = roundTrip(t, unionDoc{Sockets: ptr(One(sock))})
	if out.Sockets.IsMany() {
		t.Fatalf("expected single socket")
	}
	if got := out.Sockets.Values()[0]; *got.SockPathName != "/tmp/example.sock" {
		t.Fatalf("unexpected socket: %+v", got)
	}
	dict, ok := raw["Sockets"].(map[string]interface{})
	if !ok || len(dict) != 1 || dict["SockPathName"] != "/tmp/example.sock" {
		t.Fatalf("expected bare socket dictionary, got %v", raw["Sockets"])
	}
}

func TestBoolOr_Variants(t *testing.T) {
	out, raw := roundTrip(t, unionDoc{Service: ptr(MachServiceFlag(true))})
	if b, ok := out.Service.AsBool(); !ok || !b {
		t.Fatalf("expected flag true, got %v %v", b, ok)
	}
	if raw["Service"] != true {
		t.Fatalf("expected bare bool, got %v", raw["Service"])
	}

	svc := NewMachServiceBuilder().ResetAtClose(true).Build()
	out, raw = roundTrip(t, unionDoc{Service: ptr(MachServiceObject(svc))})
	if got, ok := out.Service.AsObject(); !ok || got != svc {
		t.Fatalf("expected object %+v, got %+v %v", svc, got, ok)
	}
	dict := raw["Service"].(map[string]interface{})
	if len(dict) != 2 || dict["ResetAtClose"] != true || dict["HideUntilCheckIn"] != false {
		t.Fatalf("unexpected dictionary: %v", dict)
	}

	cond := NewKeepAliveConditionsBuilder().
		SuccessfulExit(false).
		OtherJobEnabled("com.example.peer", true).
		Build()
	out, _ = roundTrip(t, unionDoc{Alive: ptr(KeepAliveWhen(cond))})
	got, ok := out.Alive.AsObject()
	if !ok {
		t.Fatalf("expected conditions variant")
	}
	if !reflect.DeepEqual(got, cond) {
		t.Fatalf("expected %+v, got %+v", cond, got)
	}
}

func TestMachService_DecodeMissingKeysDefaultFalse(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0"><dict>
<key>Service</key><dict><key>HideUntilCheckIn</key><true/></dict>
</dict></plist>`

	var out unionDoc
	if _, err := plist.Unmarshal([]byte(doc), &out); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	svc, ok := out.Service.AsObject()
	if !ok {
		t.Fatalf("expected object variant")
	}
	if svc.ResetAtClose || !svc.HideUntilCheckIn {
		t.Fatalf("unexpected service: %+v", svc)
	}
}

func TestBonjour_Variants(t *testing.T) {
	cases := []struct {
		name string
		in   Bonjour
		raw  interface{}
	}{
		{name: "flag", in: BonjourFlag(true), raw: true},
		{name: "name", in: BonjourName("web"), raw: "web"},
		{name: "names", in: BonjourNames("web", "api"), raw: []interface{}{"web", "api"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, raw := roundTrip(t, unionDoc{Bonjour: ptr(tc.in)})
			if !reflect.DeepEqual(*out.Bonjour, tc.in) {
				t.Fatalf("expected %+v, got %+v", tc.in, *out.Bonjour)
			}
			if !reflect.DeepEqual(raw["Bonjour"], tc.raw) {
				t.Fatalf("expected raw %v, got %v", tc.raw, raw["Bonjour"])
			}
		})
	}
}
