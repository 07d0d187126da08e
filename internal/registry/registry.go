package registry

import (
	"github.com/provis-labs/provis/internal/asset"
)

// Reserved group names. Model groups share the namespace for display only;
// the typed fields below keep them apart.
const (
	GroupURL         = "url"
	GroupCustomNodes = asset.CustomNodesGroup
	GroupCommands    = "commands"
)

// Registry is the deduplicated aggregation of selected workflows. The zero
// value is not usable; call New.
type Registry struct {
	groupOrder []string
	models     map[string][]*asset.ModelAsset
	repos      []*asset.RepoAsset
	commands   []asset.Command

	urls        map[string]struct{}
	urlOrder    []string
	commandKeys map[string]struct{}
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		models:      make(map[string][]*asset.ModelAsset),
		urls:        make(map[string]struct{}),
		commandKeys: make(map[string]struct{}),
	}
}

// AddModel appends m to its group. It returns false without modifying the
// registry when m's URL was already seen. Empty URLs are never deduplicated.
func (r *Registry) AddModel(m *asset.ModelAsset) bool {
	if !r.claimURL(m.SourceURL()) {
		return false
	}
	group := m.Group()
	if _, ok := r.models[group]; !ok {
		r.groupOrder = append(r.groupOrder, group)
	}
	r.models[group] = append(r.models[group], m)
	return true
}

// AddRepo appends repo to the custom_nodes group unless its URL was seen.
func (r *Registry) AddRepo(repo *asset.RepoAsset) bool {
	if !r.claimURL(repo.SourceURL()) {
		return false
	}
	r.repos = append(r.repos, repo)
	return true
}

// AddCommand appends c unless an equal command was already accepted.
func (r *Registry) AddCommand(c asset.Command) bool {
	key := c.Key()
	if _, ok := r.commandKeys[key]; ok {
		return false
	}
	r.commandKeys[key] = struct{}{}
	r.commands = append(r.commands, c)
	return true
}

func (r *Registry) claimURL(sourceURL string) bool {
	if sourceURL == "" {
		return true
	}
	if _, ok := r.urls[sourceURL]; ok {
		return false
	}
	r.urls[sourceURL] = struct{}{}
	r.urlOrder = append(r.urlOrder, sourceURL)
	return true
}

// Repos returns the custom_nodes group in merge order.
func (r *Registry) Repos() []*asset.RepoAsset {
	return append([]*asset.RepoAsset(nil), r.repos...)
}

// Commands returns the commands group in merge order.
func (r *Registry) Commands() []asset.Command {
	return append([]asset.Command(nil), r.commands...)
}

// ModelGroups returns model group names in first-seen order.
func (r *Registry) ModelGroups() []string {
	return append([]string(nil), r.groupOrder...)
}

// Models returns the entries of one model group in merge order.
func (r *Registry) Models(group string) []*asset.ModelAsset {
	return append([]*asset.ModelAsset(nil), r.models[group]...)
}

// URLs returns every accepted non-empty source URL in acceptance order.
func (r *Registry) URLs() []string {
	return append([]string(nil), r.urlOrder...)
}

// Len returns the number of asset entries across all groups.
func (r *Registry) Len() int {
	n := len(r.repos)
	for _, ms := range r.models {
		n += len(ms)
	}
	return n
}

// Counts returns the number of entries per group, including custom_nodes
// and commands when non-empty.
func (r *Registry) Counts() map[string]int {
	counts := make(map[string]int, len(r.groupOrder)+2)
	if len(r.repos) > 0 {
		counts[GroupCustomNodes] = len(r.repos)
	}
	if len(r.commands) > 0 {
		counts[GroupCommands] = len(r.commands)
	}
	for g, ms := range r.models {
		counts[g] = len(ms)
	}
	return counts
}
