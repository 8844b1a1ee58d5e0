// Package services contains the core application services implementing the
// driving ports: catalog browsing, recommendation scoring, prompt building,
// and the session orchestrator.
package services
