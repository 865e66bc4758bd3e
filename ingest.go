// Package ingest turns a user-supplied source (a web page URL or a video
// URL) into clean, whitespace-normalized prose plus a title.
//
// Video sources are read from their caption track and, when a completion
// service is configured, have their punctuation restored chunk by chunk.
// Web pages are fetched over HTTP and reduced to their main article text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, youtube/).
package ingest
