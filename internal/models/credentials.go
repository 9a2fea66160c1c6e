// Package models defines data structures for StockAI
package models

import "strings"

// Capability is a category of external service credential.
type Capability string

const (
	CapabilityLLM    Capability = "llm"
	CapabilityWeb    Capability = "web"
	CapabilitySearch Capability = "search"
)

// Valid reports whether c is one of the known capabilities.
func (c Capability) Valid() bool {
	switch c {
	case CapabilityLLM, CapabilityWeb, CapabilitySearch:
		return true
	}
	return false
}

// CapabilityForAnalysis maps an analysis type to the credential it needs.
// News analysis runs on search tooling, everything else on the LLM.
func CapabilityForAnalysis(analysisType string) Capability {
	if strings.EqualFold(analysisType, "news") {
		return CapabilitySearch
	}
	return CapabilityLLM
}

// ProviderNone is reported when no key is configured for a capability.
const ProviderNone = "none"

// Compiled-in defaults for each capability group.
const (
	DefaultLLMProvider    = "openai"
	DefaultLLMModel       = "gpt-4"
	DefaultWebTool        = "firecrawl"
	DefaultWebMode        = "Standard"
	DefaultSearchProvider = "serper"
	DefaultSearchMode     = "Search"
)

// LLMProvider holds the language model credential group.
type LLMProvider struct {
	SelectedProvider string `json:"selectedProvider"`
	APIKey           string `json:"apiKey"`
	Model            string `json:"model"`
}

// WebTools holds the web scraping credential group.
type WebTools struct {
	SelectedTool string `json:"selectedTool"`
	APIKey       string `json:"apiKey"`
	Mode         string `json:"mode"`
}

// SearchTools holds the search API credential group.
type SearchTools struct {
	SelectedProvider string `json:"selectedProvider"`
	APIKey           string `json:"apiKey"`
	Mode             string `json:"mode"`
}

// CredentialBundle is the full set of per-capability credentials for one user.
// A nil group means "absent": partial updates carry only the groups they replace.
type CredentialBundle struct {
	UserID      string       `json:"userId,omitempty"`
	LLMProvider *LLMProvider `json:"llmProvider,omitempty"`
	WebTools    *WebTools    `json:"webTools,omitempty"`
	SearchTools *SearchTools `json:"searchTools,omitempty"`
}

// DefaultCredentialBundle returns a bundle populated with compiled-in defaults and no keys.
func DefaultCredentialBundle() *CredentialBundle {
	return &CredentialBundle{
		LLMProvider: &LLMProvider{SelectedProvider: DefaultLLMProvider, Model: DefaultLLMModel},
		WebTools:    &WebTools{SelectedTool: DefaultWebTool, Mode: DefaultWebMode},
		SearchTools: &SearchTools{SelectedProvider: DefaultSearchProvider, Mode: DefaultSearchMode},
	}
}

// IsEmpty reports whether the bundle carries no groups at all.
func (b *CredentialBundle) IsEmpty() bool {
	return b == nil || (b.LLMProvider == nil && b.WebTools == nil && b.SearchTools == nil)
}

// Clone returns a deep copy of the bundle. A nil receiver clones to an empty bundle.
func (b *CredentialBundle) Clone() *CredentialBundle {
	out := &CredentialBundle{}
	if b == nil {
		return out
	}
	out.UserID = b.UserID
	if b.LLMProvider != nil {
		g := *b.LLMProvider
		out.LLMProvider = &g
	}
	if b.WebTools != nil {
		g := *b.WebTools
		out.WebTools = &g
	}
	if b.SearchTools != nil {
		g := *b.SearchTools
		out.SearchTools = &g
	}
	return out
}

// Merge returns a copy of b with every group present in patch replacing the
// corresponding group wholesale. Groups are never merged field by field.
func (b *CredentialBundle) Merge(patch *CredentialBundle) *CredentialBundle {
	out := b.Clone()
	if patch == nil {
		return out
	}
	p := patch.Clone()
	if p.LLMProvider != nil {
		out.LLMProvider = p.LLMProvider
	}
	if p.WebTools != nil {
		out.WebTools = p.WebTools
	}
	if p.SearchTools != nil {
		out.SearchTools = p.SearchTools
	}
	return out
}

// WithDefaults returns a copy of b where absent groups are filled with defaults.
func (b *CredentialBundle) WithDefaults() *CredentialBundle {
	out := b.Clone()
	def := DefaultCredentialBundle()
	if out.LLMProvider == nil {
		out.LLMProvider = def.LLMProvider
	}
	if out.WebTools == nil {
		out.WebTools = def.WebTools
	}
	if out.SearchTools == nil {
		out.SearchTools = def.SearchTools
	}
	return out
}

// Credential extracts the credential for a capability. It returns false when
// the bundle holds no non-empty key for it.
//
// search borrows the web tools key when no search key is stored.
func (b *CredentialBundle) Credential(c Capability) (ResolvedCredential, bool) {
	if b == nil {
		return ResolvedCredential{}, false
	}
	switch c {
	case CapabilityLLM:
		if g := b.LLMProvider; g != nil && g.APIKey != "" {
			return ResolvedCredential{
				APIKey:   g.APIKey,
				Provider: orDefault(g.SelectedProvider, DefaultLLMProvider),
				Model:    g.Model,
			}, true
		}
	case CapabilityWeb:
		return b.webCredential()
	case CapabilitySearch:
		if g := b.SearchTools; g != nil && g.APIKey != "" {
			return ResolvedCredential{
				APIKey:   g.APIKey,
				Provider: orDefault(g.SelectedProvider, DefaultSearchProvider),
				Mode:     g.Mode,
			}, true
		}
		return b.webCredential()
	}
	return ResolvedCredential{}, false
}

func (b *CredentialBundle) webCredential() (ResolvedCredential, bool) {
	if g := b.WebTools; g != nil && g.APIKey != "" {
		return ResolvedCredential{
			APIKey:   g.APIKey,
			Provider: orDefault(g.SelectedTool, DefaultWebTool),
			Mode:     g.Mode,
		}, true
	}
	return ResolvedCredential{}, false
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CredentialSource names the tier that produced a credential.
type CredentialSource string

const (
	SourcePrimary CredentialSource = "primary"
	SourceLocal   CredentialSource = "local"
	SourceDefault CredentialSource = "default"
)

// ResolvedCredential is the outcome of resolving one capability.
// Provider is never empty; ProviderNone marks "no key configured".
type ResolvedCredential struct {
	APIKey   string           `json:"apiKey"`
	Provider string           `json:"provider"`
	Model    string           `json:"model,omitempty"`
	Mode     string           `json:"mode,omitempty"`
	Source   CredentialSource `json:"-"`
}

// NoCredential is the sentinel returned when no tier holds a key.
func NoCredential() ResolvedCredential {
	return ResolvedCredential{Provider: ProviderNone, Source: SourceDefault}
}

// Configured reports whether the credential carries a key.
func (r ResolvedCredential) Configured() bool {
	return r.APIKey != ""
}
