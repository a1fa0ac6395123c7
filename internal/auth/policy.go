package auth

import (
	"errors"

	"github.com/Spok95/hifz-contest/internal/models"
)

var ErrForbidden = errors.New("forbidden")

type Action string

const (
	ActionViewCompetitors Action = "competitors.view"
	ActionRegister        Action = "competitors.register"
	ActionDelete          Action = "competitors.delete"
	ActionImport          Action = "competitors.import"
	ActionEvaluate        Action = "evaluations.save"
	ActionViewResults     Action = "results.view"
	ActionViewLive        Action = "live.view"
)

var permissions = map[Action][]models.Role{
	ActionViewCompetitors: {models.Admin, models.Evaluator, models.Viewer},
	ActionRegister:        {models.Admin},
	ActionDelete:          {models.Admin},
	ActionImport:          {models.Admin},
	ActionEvaluate:        {models.Admin, models.Evaluator},
	ActionViewResults:     {models.Admin, models.Evaluator, models.Viewer},
	ActionViewLive:        {models.Admin, models.Evaluator, models.Viewer},
}

// Allowed: чистая проверка, без обращения к хранилищу.
func Allowed(s models.Session, a Action) bool {
	for _, r := range permissions[a] {
		if r == s.Role {
			return true
		}
	}
	return false
}

func Require(s models.Session, a Action) error {
	if !Allowed(s, a) {
		return ErrForbidden
	}
	return nil
}
