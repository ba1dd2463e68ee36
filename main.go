package main

import (
	"log"
	"net/http"
	"strconv"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/motion"
)

// site carries what the handlers share. Each stream builds its own animators
// off clock; nothing is shared between connections.
type site struct {
	cfg     Config
	content *Content
	clock   motion.Clock
}

func main() {
	cfg := loadConfig()

	content, err := LoadContent(cfg.ContentFile)
	if err != nil {
		log.Fatal("Failed to load content: ", err)
	}
	log.Printf("Loaded %d projects, %d roles, %d counters",
		len(content.Projects), len(content.Hero.Roles), len(content.About.Counters))

	s := &site{cfg: cfg, content: content, clock: motion.SystemClock}

	r := gin.Default()
	r.LoadHTMLGlob("templates/*")
	setupRoutes(r, s)

	log.Printf("Listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// projectsPageSize is how many projects the grid shows per "load more" step.
const projectsPageSize = 6

// projectGrid is the template data for projects.html: the first limit
// projects of category (all of them when limit is 0) and the next page link.
func (s *site) projectGrid(category string, limit int) (gin.H, error) {
	all, err := s.content.FilterProjects(category, 0)
	if err != nil {
		return nil, err
	}
	shown := all
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	return gin.H{
		"projects": shown,
		"active":   category,
		"more":     len(shown) < len(all),
		"next":     limit + projectsPageSize,
	}, nil
}

func setupRoutes(r *gin.Engine, s *site) {
	r.Static("/static", "./static")

	// Home page route
	r.GET("/", func(c *gin.Context) {
		data, _ := s.projectGrid("all", projectsPageSize)
		data["hero"] = s.content.Hero
		data["about"] = s.content.About
		data["skills"] = s.content.SkillsByCategory()
		data["categories"] = ProjectCategories
		data["contact"] = s.content.Contact
		data["year"] = s.clock.Now().Year()
		c.HTML(http.StatusOK, "index.html", data)
	})

	// Work experience content
	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"heading": "Work Experience",
			"entries": s.content.Experience,
		})
	})

	// Education content
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"heading": "Education",
			"entries": s.content.Education,
		})
	})

	// Portfolio grid fragment, swapped in by the category filter and "load
	// more". limit=0 shows every project.
	r.GET("/projects", func(c *gin.Context) {
		category := c.DefaultQuery("category", "all")
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(projectsPageSize)))
		if err != nil || limit < 0 {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": "Invalid limit"})
			return
		}

		data, err := s.projectGrid(category, limit)
		if err != nil {
			c.HTML(http.StatusBadRequest, "error.html", gin.H{"error": err.Error()})
			return
		}
		c.HTML(http.StatusOK, "projects.html", data)
	})

	// Project detail fragment
	r.GET("/project/:id", func(c *gin.Context) {
		project, ok := s.content.Project(c.Param("id"))
		if !ok {
			c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Project not found"})
			return
		}
		c.HTML(http.StatusOK, "project.html", project)
	})

	// HTMX Contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.POST("/contact", s.handleContact)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupStreamRoutes(r, s)
}
