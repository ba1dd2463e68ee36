package main

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content is everything the page renders: hero, about, skills, projects and
// contact details.
type Content struct {
	Hero       Hero            `yaml:"hero"`
	About      About           `yaml:"about"`
	Experience []TimelineEntry `yaml:"experience"`
	Education  []TimelineEntry `yaml:"education"`
	Skills     []Skill         `yaml:"skills"`
	Projects   []Project       `yaml:"projects"`
	Contact    ContactInfo     `yaml:"contact"`
}

type Hero struct {
	Name    string   `yaml:"name"`
	Tagline string   `yaml:"tagline"`
	Roles   []string `yaml:"roles"` // cycled by the hero typewriter
}

type About struct {
	Text     string        `yaml:"text"`
	Counters []Achievement `yaml:"counters"`
}

// Achievement is an animated counter in the about section.
type Achievement struct {
	Label  string `yaml:"label" json:"label"`
	Value  int    `yaml:"value" json:"value"`
	Suffix string `yaml:"suffix" json:"suffix,omitempty"`
}

// TimelineEntry is a job or a qualification in the about timeline.
type TimelineEntry struct {
	Title        string   `yaml:"title"` // job title or degree
	Organization string   `yaml:"organization"`
	StartDate    string   `yaml:"startDate"`
	EndDate      string   `yaml:"endDate"` // empty while ongoing
	Highlights   []string `yaml:"highlights"`
}

type Skill struct {
	Name     string `yaml:"name"`
	Level    int    `yaml:"level"` // percent
	Category string `yaml:"category"`
}

type Project struct {
	ID             string   `yaml:"id" json:"id"`
	Title          string   `yaml:"title" json:"title"`
	Description    string   `yaml:"description" json:"description"`
	Category       string   `yaml:"category" json:"category"`
	Technologies   []string `yaml:"technologies" json:"technologies"`
	Icon           string   `yaml:"icon" json:"icon"`
	Image          string   `yaml:"image" json:"image,omitempty"`
	DemoURL        string   `yaml:"demoUrl" json:"demo_url,omitempty"`
	GithubURL      string   `yaml:"githubUrl" json:"github_url,omitempty"`
	CompletionDate string   `yaml:"completionDate" json:"completion_date"`
	Featured       bool     `yaml:"featured" json:"featured"`
}

type ContactInfo struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Location string `yaml:"location"`
}

// ProjectCategories lists the filterable portfolio categories in display order.
var ProjectCategories = []string{"ai", "business", "tourism", "utility", "web"}

// LoadContent reads content from a YAML file, or the embedded default when
// path is empty.
func LoadContent(path string) (*Content, error) {
	if path == "" {
		return ParseContent(defaultContent)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	return ParseContent(data)
}

// ParseContent decodes and validates content YAML.
func ParseContent(data []byte) (*Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse content YAML: %w", err)
	}
	if err := validateContent(&content); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &content, nil
}

func validateContent(c *Content) error {
	if len(c.Hero.Roles) == 0 {
		return fmt.Errorf("hero.roles cannot be empty")
	}
	for i, a := range c.About.Counters {
		if a.Label == "" {
			return fmt.Errorf("about.counters[%d]: label cannot be empty", i)
		}
		if a.Value < 0 {
			return fmt.Errorf("about.counters[%d]: value must be >= 0, got %d", i, a.Value)
		}
	}
	if err := validateTimeline("experience", c.Experience); err != nil {
		return err
	}
	if err := validateTimeline("education", c.Education); err != nil {
		return err
	}
	for _, s := range c.Skills {
		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("skill %q: level must be between 0 and 100, got %d", s.Name, s.Level)
		}
	}
	seen := make(map[string]bool, len(c.Projects))
	for i, p := range c.Projects {
		if p.ID == "" {
			return fmt.Errorf("projects[%d]: id cannot be empty", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
		if !slices.Contains(ProjectCategories, p.Category) {
			return fmt.Errorf("project %q: unknown category %q", p.ID, p.Category)
		}
	}
	return nil
}

func validateTimeline(section string, entries []TimelineEntry) error {
	for i, e := range entries {
		switch {
		case e.Title == "":
			return fmt.Errorf("%s[%d]: title cannot be empty", section, i)
		case e.Organization == "":
			return fmt.Errorf("%s[%d]: organization cannot be empty", section, i)
		case e.StartDate == "":
			return fmt.Errorf("%s[%d]: startDate cannot be empty", section, i)
		}
	}
	return nil
}

// FilterProjects returns the projects in category ("" or "all" for every
// project), featured ones first. A positive limit caps the result.
func (c *Content) FilterProjects(category string, limit int) ([]Project, error) {
	if category != "" && category != "all" && !slices.Contains(ProjectCategories, category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	var out []Project
	for _, p := range c.Projects {
		if category == "" || category == "all" || p.Category == category {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b Project) int {
		switch {
		case a.Featured && !b.Featured:
			return -1
		case !a.Featured && b.Featured:
			return 1
		}
		return 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Project looks a project up by id.
func (c *Content) Project(id string) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// SkillsByCategory groups skills under their category, keeping file order.
func (c *Content) SkillsByCategory() []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)
	for _, s := range c.Skills {
		i, ok := index[s.Category]
		if !ok {
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SkillGroup{Category: s.Category})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

type SkillGroup struct {
	Category string
	Skills   []Skill
}
