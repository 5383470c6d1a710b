// Package timezone pins every wall-clock decision to the villa's own zone,
// read from APP_TIMEZONE (an IANA name such as "Asia/Makassar"). Unknown or
// empty names fall back to UTC.
//
// API timestamps still leave the service in UTC through FormatISO.
package timezone
