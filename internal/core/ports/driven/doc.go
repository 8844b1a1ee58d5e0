// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the LLM provider, the catalog and persona
// sources, the conversation log sink, and the history index.
package driven
