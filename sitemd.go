// Package sitemd provides a polite website crawler that extracts the main
// readable content of each page and exports it as Markdown or JSON. It crawls
// breadth-first from a seed URL, honors robots.txt and user-supplied path
// exclusions, and caps every session at a fixed page budget.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, robotstxt/).
package sitemd
