package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ContactForm is the contact section's form.
type ContactForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"required,max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

// handleContact validates the form, then waits out the configured delay to
// simulate delivery. Nothing is sent or stored.
func (s *site) handleContact(c *gin.Context) {
	var form ContactForm
	if err := c.ShouldBind(&form); err != nil {
		// Fragments are returned with 200 so HTMX swaps them in.
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": contactErrorMessage(err),
		})
		return
	}

	if s.cfg.ContactDelay > 0 {
		done := make(chan struct{})
		t := s.clock.AfterFunc(s.cfg.ContactDelay, func() { close(done) })
		select {
		case <-done:
		case <-c.Request.Context().Done():
			t.Stop()
			log.Printf("Contact submission from %s abandoned by client", c.ClientIP())
			return
		}
	}

	log.Printf("Contact submission from %q (%d chars)", form.Name, len(form.Message))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
		"name":    form.Name,
	})
}

func contactErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Sorry, there was an error sending your message. Please try again later."
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please fill in your %s.", strings.ToLower(fe.Field()))
	case "email":
		return "Please enter a valid email address."
	case "max":
		return fmt.Sprintf("Your %s is too long (max %s characters).", strings.ToLower(fe.Field()), fe.Param())
	}
	return fmt.Sprintf("Please check your %s.", strings.ToLower(fe.Field()))
}
