// Package leads turns completed sessions into leads and hands them to a
// ports.LeadSink. Contact details are validated before anything is sent.
package leads
