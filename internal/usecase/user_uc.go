package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-post-curator/internal/domain/model"
	"telegram-post-curator/internal/domain/ports/repository"
	"telegram-post-curator/internal/infra/logging"
	"telegram-post-curator/internal/infra/metrics"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase registers chat users.
type UserUseCase interface {
	// OnFirstContact stores the profile if the user is unknown. An existing
	// record is left untouched. created reports whether a record was written.
	OnFirstContact(ctx context.Context, p model.Profile) (created bool, err error)
}

type userUC struct {
	users repository.UserRepository
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, logger *zerolog.Logger) *userUC {
	return &userUC{
		users: users,
		log:   logger,
	}
}

func (u *userUC) OnFirstContact(ctx context.Context, p model.Profile) (bool, error) {
	defer logging.TraceDuration(u.log, "UserUC.OnFirstContact")()

	user, err := model.NewUser(p)
	if err != nil {
		return false, err
	}
	created, err := u.users.InsertIfAbsent(ctx, user)
	if err != nil {
		return false, err
	}
	if created {
		metrics.IncUsersRegistered()
		logging.With(ctx, u.log).Info().Msg("user registered")
	}
	return created, nil
}
