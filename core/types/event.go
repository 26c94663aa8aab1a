package types

import "google.golang.org/protobuf/encoding/protowire"

// Attribute is an ordered key/value pair attached to an Event.
type Attribute struct {
	Key   string
	Value string
}

func (a *Attribute) Marshal() ([]byte, error) {
	e := &encoder{}
	e.string(1, "key", a.Key)
	e.string(2, "value", a.Value)
	return e.result()
}

func (a *Attribute) Unmarshal(b []byte) error {
	d := newDecoder("Attribute", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			a.Key, err = d.string("key")
		case num == 2 && typ == protowire.BytesType:
			a.Value, err = d.string("value")
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Event is an application-defined notification recorded alongside a state
// change.
type Event struct {
	EventType  string
	Attributes []Attribute
	Data       []byte
}

func (ev *Event) Marshal() ([]byte, error) {
	e := &encoder{}
	e.string(1, "event_type", ev.EventType)
	for i := range ev.Attributes {
		e.message(2, "attributes", &ev.Attributes[i])
	}
	e.bytes(3, ev.Data)
	return e.result()
}

func (ev *Event) Unmarshal(b []byte) error {
	d := newDecoder("Event", b)
	for d.more() {
		num, typ, err := d.tag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == protowire.BytesType:
			ev.EventType, err = d.string("event_type")
		case num == 2 && typ == protowire.BytesType:
			var attr Attribute
			if err = d.message(&attr); err == nil {
				ev.Attributes = append(ev.Attributes, attr)
			}
		case num == 3 && typ == protowire.BytesType:
			ev.Data, err = d.bytes()
		default:
			err = d.skip(num, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
