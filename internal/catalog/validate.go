package catalog

import "fmt"

// Issue is a data-integrity problem found in a catalog
type Issue struct {
	Catalog  string
	Landmark string // empty for level-level issues
	Message  string
}

func (i Issue) String() string {
	if i.Landmark == "" {
		return fmt.Sprintf("%s: %s", i.Catalog, i.Message)
	}
	return fmt.Sprintf("%s/%s: %s", i.Catalog, i.Landmark, i.Message)
}

// Validate reports duplicate ids and ids that do not resolve, both in
// related structures and in level memberships
func (c *Catalog) Validate() []Issue {
	var issues []Issue

	seen := make(map[string]bool, len(c.landmarks))
	for _, lm := range c.landmarks {
		if seen[lm.ID] {
			issues = append(issues, Issue{Catalog: c.Name, Landmark: lm.ID, Message: "duplicate landmark id"})
		}
		seen[lm.ID] = true
	}

	for _, lm := range c.landmarks {
		for _, rel := range lm.RelatedStructures {
			if _, ok := c.index[rel]; !ok {
				issues = append(issues, Issue{
					Catalog:  c.Name,
					Landmark: lm.ID,
					Message:  fmt.Sprintf("related structure %q not found", rel),
				})
			}
		}
	}

	for _, level := range Levels {
		for _, id := range c.levels[level] {
			if _, ok := c.index[id]; !ok {
				issues = append(issues, Issue{
					Catalog: c.Name,
					Message: fmt.Sprintf("level %s lists unknown landmark %q", level, id),
				})
			}
		}
	}

	return issues
}
