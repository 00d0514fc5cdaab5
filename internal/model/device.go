package model

import "time"

// DeviceEvent is an informational status report ingested from the
// scale/printer webhook.  It never gates a state transition; rows
// exist purely for operational visibility.
//
// Fields:
//  ID         – primary key identifier.
//  DeviceID   – reporting device identifier.
//  DeviceType – SCALE or PRINTER.
//  Status     – device-reported status string.
//  Payload    – raw JSON payload as received.
//  ReceivedAt – ingestion timestamp.
type DeviceEvent struct {
    ID         uint64    // device_events.id
    DeviceID   string    // device_events.device_id
    DeviceType string    // device_events.device_type
    Status     string    // device_events.status
    Payload    string    // device_events.payload
    ReceivedAt time.Time // device_events.received_at
}
