package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

// caller returns the backend identity of the signed-in user.
func caller(c *fiber.Ctx) (auth.Session, job.Caller) {
	sess, _ := jwt.SessionFrom(c)
	return sess, job.Caller{Token: sess.Token, Email: sess.Email}
}
