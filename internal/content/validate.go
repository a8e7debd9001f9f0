package content

import (
	"fmt"
	"sort"
)

// Problem describes one inconsistency found by Validate.
type Problem struct {
	ProjectID string
	Message   string
}

func (p Problem) String() string {
	if p.ProjectID == "" {
		return p.Message
	}
	return fmt.Sprintf("%s: %s", p.ProjectID, p.Message)
}

// Validate reports inconsistencies that would make pages redirect or render
// partially: listed projects without detail records, duplicate ids, dangling
// next-project links and a gated section without a password. A Document with
// problems is still usable.
func (d *Document) Validate() []Problem {
	var problems []Problem

	if len(d.SelectedWork.Projects) > 0 && !d.SelectedWork.Protected() {
		problems = append(problems, Problem{Message: "selectedWork has projects but no password"})
	}

	seen := make(map[string]string)
	check := func(section string, projects []Project) {
		for _, p := range projects {
			if p.ID == "" {
				problems = append(problems, Problem{Message: fmt.Sprintf("%s has a project without an id (%q)", section, p.Title)})
				continue
			}
			if prev, dup := seen[p.ID]; dup {
				problems = append(problems, Problem{ProjectID: p.ID, Message: fmt.Sprintf("listed in both %s and %s", prev, section)})
				continue
			}
			seen[p.ID] = section
			if _, ok := d.Detail(p.ID); !ok {
				problems = append(problems, Problem{ProjectID: p.ID, Message: "no projectDetails entry"})
			}
			if p.Thumbnail == "" && len(p.Thumbnails) == 0 {
				problems = append(problems, Problem{ProjectID: p.ID, Message: "no thumbnail"})
			}
		}
	}
	check("selectedWork", d.SelectedWork.Projects)
	check("personalWork", d.PersonalWork.Projects)

	ids := make([]string, 0, len(d.ProjectDetails))
	for id := range d.ProjectDetails {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		next := d.ProjectDetails[id].NextProject
		if next == nil {
			continue
		}
		if _, ok := d.Detail(next.ID); !ok {
			problems = append(problems, Problem{ProjectID: id, Message: fmt.Sprintf("nextProject %q has no projectDetails entry", next.ID)})
		}
	}

	return problems
}

// Assets lists every image path referenced by the document, in document
// order, without duplicates.
func (d *Document) Assets() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, section := range []Section{d.SelectedWork, d.PersonalWork} {
		for _, p := range section.Projects {
			add(p.Thumbnail)
			for _, t := range p.Thumbnails {
				add(t)
			}
		}
	}

	ids := make([]string, 0, len(d.ProjectDetails))
	for id := range d.ProjectDetails {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		detail := d.ProjectDetails[id]
		for _, img := range detail.Images {
			add(img.Src)
		}
		if detail.NextProject != nil {
			add(detail.NextProject.Thumbnail)
		}
	}
	return out
}
