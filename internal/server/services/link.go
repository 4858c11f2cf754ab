package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/dbx"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
)

// LinkService keeps every plant and every pot in at most one link.
//
// Link runs its checks and the insert in one SERIALIZABLE transaction.
// The unique constraints on both columns of plant_pot_assignments catch
// whatever the checks miss under concurrency.
type LinkService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewLinkService(db *sql.DB, m repomanager.RepositoryManager) *LinkService {
	return &LinkService{db: db, repomanager: m}
}

// Link assigns plantID to potID. Both must belong to userID.
func (s *LinkService) Link(ctx context.Context, userID, plantID, potID int64) error {
	if err := requireID("plantId", plantID); err != nil {
		return err
	}
	if err := requireID("potId", potID); err != nil {
		return err
	}

	err := withTx(ctx, s.db, dbx.Serializable, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := ownedPlant(ctx, s.repomanager, tx, userID, plantID); err != nil {
			return err
		}
		if _, err := ownedPot(ctx, s.repomanager, tx, userID, potID); err != nil {
			return err
		}

		repo := s.repomanager.Assignments(tx)

		taken, err := repo.ExistsForPot(ctx, potID)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrAlreadyLinked
		}

		taken, err = repo.ExistsForPlant(ctx, plantID)
		if err != nil {
			return err
		}
		if taken {
			return common.ErrAlreadyLinked
		}

		if _, err := repo.Create(ctx, plantID, potID); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrAlreadyLinked
			}
			return err
		}
		return nil
	})

	if dbx.IsSerializationFailure(err) {
		return s.afterSerializationFailure(ctx, plantID, potID, err)
	}
	return classifyLinkError(err)
}

// afterSerializationFailure looks at committed state once the transaction
// is gone. Only a link now holding either side counts as a lost race; any
// other serialization failure is a transient store error.
func (s *LinkService) afterSerializationFailure(ctx context.Context, plantID, potID int64, cause error) error {
	repo := s.repomanager.Assignments(s.db)

	taken, err := repo.ExistsForPot(ctx, potID)
	if err != nil {
		return internal(cause)
	}
	if !taken {
		if taken, err = repo.ExistsForPlant(ctx, plantID); err != nil {
			return internal(cause)
		}
	}
	if taken {
		return common.ErrAlreadyLinked
	}
	return internal(cause)
}

// Unlink removes the link between plantID and potID if the pot belongs to
// userID. Removing a link that does not exist succeeds.
func (s *LinkService) Unlink(ctx context.Context, userID, plantID, potID int64) error {
	if err := requireID("plantId", plantID); err != nil {
		return err
	}
	if err := requireID("potId", potID); err != nil {
		return err
	}

	if _, err := s.repomanager.Assignments(s.db).DeleteOwned(ctx, plantID, potID, userID); err != nil {
		return internal(err)
	}
	return nil
}

// classifyLinkError maps a transaction outcome onto the public taxonomy.
func classifyLinkError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.Is(err, common.ErrAlreadyLinked),
		dbx.IsUniqueViolation(err):
		return common.ErrAlreadyLinked
	default:
		return internal(err)
	}
}
