//go:build darwin

package eventkit

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework EventKit -framework Foundation -framework CoreGraphics -framework AppKit -framework CoreLocation
#include <stdlib.h>
#include "bridge.h"
*/
import "C"

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime/cgo"
	"unsafe"
)

// bridge implements API over the EventKit framework. Records cross the
// cgo boundary as JSON strings produced and consumed by bridge_darwin.m;
// the Objective-C side holds the single shared EKEventStore.
type bridge struct{}

// New returns the EventKit-backed API.
func New() (API, error) {
	return &bridge{}, nil
}

type accessCallback func(granted bool, err error)

type fetchCallback func(items []Item, err error)

//export ekbridgeAccessDone
func ekbridgeAccessDone(h C.uintptr_t, granted C.int, errMsg *C.char) {
	handle := cgo.Handle(h)
	fn := handle.Value().(accessCallback)
	handle.Delete()

	var err error
	if errMsg != nil {
		err = errors.New(C.GoString(errMsg))
		C.free(unsafe.Pointer(errMsg))
	}
	fn(granted != 0, err)
}

//export ekbridgeFetchDone
func ekbridgeFetchDone(h C.uintptr_t, itemsJSON *C.char, errMsg *C.char) {
	handle := cgo.Handle(h)
	fn := handle.Value().(fetchCallback)
	handle.Delete()

	if errMsg != nil {
		err := errors.New(C.GoString(errMsg))
		C.free(unsafe.Pointer(errMsg))
		fn(nil, err)
		return
	}

	var items []Item
	if itemsJSON != nil {
		raw := C.GoString(itemsJSON)
		C.free(unsafe.Pointer(itemsJSON))
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			fn(nil, fmt.Errorf("decode fetched reminders: %w", err))
			return
		}
	}
	fn(items, nil)
}

func (b *bridge) RequestAccess(fn func(granted bool, err error)) {
	h := cgo.NewHandle(accessCallback(fn))
	C.ekbridge_request_access(C.uintptr_t(h))
}

func (b *bridge) FetchItems(p Predicate, fn func(items []Item, err error)) {
	pred := map[string]any{
		"include_completed": p.IncludeCompleted,
	}
	if p.CalendarIDs != nil {
		pred["calendar_ids"] = p.CalendarIDs
	}
	if p.DueStarting != nil {
		pred["due_starting"] = *p.DueStarting
	}
	if p.DueEnding != nil {
		pred["due_ending"] = *p.DueEnding
	}
	raw, err := json.Marshal(pred)
	if err != nil {
		fn(nil, fmt.Errorf("encode predicate: %w", err))
		return
	}

	cpred := C.CString(string(raw))
	defer C.free(unsafe.Pointer(cpred))

	h := cgo.NewHandle(fetchCallback(fn))
	C.ekbridge_fetch_items(cpred, C.uintptr_t(h))
}

func (b *bridge) Calendars() ([]Calendar, error) {
	var cerr *C.char
	out := C.ekbridge_calendars(&cerr)
	if cerr != nil {
		defer C.free(unsafe.Pointer(cerr))
		return nil, errors.New(C.GoString(cerr))
	}
	defer C.free(unsafe.Pointer(out))

	var cals []Calendar
	if err := json.Unmarshal([]byte(C.GoString(out)), &cals); err != nil {
		return nil, fmt.Errorf("decode calendars: %w", err)
	}
	return cals, nil
}

func (b *bridge) DefaultCalendar() (*Calendar, error) {
	var cerr *C.char
	out := C.ekbridge_default_calendar(&cerr)
	if cerr != nil {
		defer C.free(unsafe.Pointer(cerr))
		return nil, errors.New(C.GoString(cerr))
	}
	if out == nil {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(out))

	var cal Calendar
	if err := json.Unmarshal([]byte(C.GoString(out)), &cal); err != nil {
		return nil, fmt.Errorf("decode default calendar: %w", err)
	}
	return &cal, nil
}

func (b *bridge) CalendarWithIdentifier(id string) (*Calendar, error) {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	out := C.ekbridge_calendar_with_identifier(cid)
	if out == nil {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(out))

	var cal Calendar
	if err := json.Unmarshal([]byte(C.GoString(out)), &cal); err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}
	return &cal, nil
}

func (b *bridge) SaveCalendar(cal *Calendar) error {
	raw, err := json.Marshal(cal)
	if err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	craw := C.CString(string(raw))
	defer C.free(unsafe.Pointer(craw))

	var cerr *C.char
	out := C.ekbridge_save_calendar(craw, &cerr)
	if cerr != nil {
		defer C.free(unsafe.Pointer(cerr))
		return errors.New(C.GoString(cerr))
	}
	defer C.free(unsafe.Pointer(out))

	return json.Unmarshal([]byte(C.GoString(out)), cal)
}

func (b *bridge) RemoveCalendar(id string) error {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	if cerr := C.ekbridge_remove_calendar(cid); cerr != nil {
		defer C.free(unsafe.Pointer(cerr))
		return errors.New(C.GoString(cerr))
	}
	return nil
}

func (b *bridge) ItemWithIdentifier(id string) (*Item, error) {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	out := C.ekbridge_item_with_identifier(cid)
	if out == nil {
		return nil, nil
	}
	defer C.free(unsafe.Pointer(out))

	var item Item
	if err := json.Unmarshal([]byte(C.GoString(out)), &item); err != nil {
		return nil, fmt.Errorf("decode reminder: %w", err)
	}
	return &item, nil
}

func (b *bridge) SaveItem(item *Item) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode reminder: %w", err)
	}
	craw := C.CString(string(raw))
	defer C.free(unsafe.Pointer(craw))

	var cerr *C.char
	out := C.ekbridge_save_item(craw, &cerr)
	if cerr != nil {
		defer C.free(unsafe.Pointer(cerr))
		return errors.New(C.GoString(cerr))
	}
	defer C.free(unsafe.Pointer(out))

	return json.Unmarshal([]byte(C.GoString(out)), item)
}

func (b *bridge) RemoveItem(id string) error {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	if cerr := C.ekbridge_remove_item(cid); cerr != nil {
		defer C.free(unsafe.Pointer(cerr))
		return errors.New(C.GoString(cerr))
	}
	return nil
}
