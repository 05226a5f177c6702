package seed

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"arcadestore/internal/model"
	"arcadestore/internal/repository"
)

// Seeder idempotently ensures the admin account and the default catalog
// entries exist. Run completes before the HTTP listener accepts traffic.
type Seeder struct {
	userRepo   repository.UserRepository
	gameRepo   repository.GameRepository
	logger     *zap.Logger
	adminEmail string
	adminPass  string
	bcryptCost int
}

// New creates a seeder.
func New(userRepo repository.UserRepository, gameRepo repository.GameRepository, logger *zap.Logger, adminEmail, adminPass string, bcryptCost int) *Seeder {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{
		userRepo:   userRepo,
		gameRepo:   gameRepo,
		logger:     logger,
		adminEmail: adminEmail,
		adminPass:  adminPass,
		bcryptCost: bcryptCost,
	}
}

// Run ensures the admin account first, then the default games. Safe to run
// repeatedly and concurrently with early requests.
func (s *Seeder) Run(ctx context.Context) error {
	admin, err := s.ensureAdmin(ctx)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if err := s.ensureDefaultGames(ctx, admin); err != nil {
		return fmt.Errorf("ensure default games: %w", err)
	}
	return nil
}

func (s *Seeder) ensureAdmin(ctx context.Context) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, s.adminEmail)
	if err == nil {
		return existing, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.adminPass), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		ID:       model.NewID(),
		FullName: "Administrator",
		Email:    s.adminEmail,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		// Another instance may have seeded first; fall back to the lookup.
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return s.userRepo.FindByEmail(ctx, s.adminEmail)
		}
		return nil, err
	}

	s.logger.Info("admin account created", zap.String("email", s.adminEmail))
	return admin, nil
}

type defaultGame struct {
	gameType model.GameType
	game     model.Game
}

func (s *Seeder) defaults(adminID string) []defaultGame {
	return []defaultGame{
		{
			gameType: model.GameTypeBalloonPop,
			game: model.Game{
				Name:        "Balloon Pop",
				Description: "Pop balloons to earn points. Don't let them get away!",
				Price:       decimal.Zero,
				Category:    model.CategoryArcade,
				Icon:        "https://upload.wikimedia.org/wikipedia/commons/thumb/0/08/Red_balloon_icon.png/240px-Red_balloon_icon.png",
				GameType:    model.GameTypeBalloonPop,
				IsActive:    true,
				CreatedByID: adminID,
			},
		},
		{
			gameType: model.GameTypePuzzle,
			game: model.Game{
				Name:        "Puzzle",
				Description: "Arrange the tiles to complete the puzzle as fast as you can.",
				Price:       decimal.NewFromInt(80),
				Category:    model.CategoryPuzzle,
				Icon:        "https://upload.wikimedia.org/wikipedia/commons/thumb/7/77/Jigsaw_puzzle_piece_icon.svg/240px-Jigsaw_puzzle_piece_icon.svg.png",
				GameType:    model.GameTypePuzzle,
				IsActive:    true,
				CreatedByID: adminID,
			},
		},
	}
}

func (s *Seeder) ensureDefaultGames(ctx context.Context, admin *model.User) error {
	for _, def := range s.defaults(admin.ID) {
		existing, err := s.gameRepo.FindByGameType(ctx, def.gameType)
		if err != nil {
			if !stderrors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			game := def.game
			if err := s.gameRepo.Create(ctx, &game); err != nil {
				return err
			}
			s.logger.Info("default game seeded", zap.String("name", game.Name))
			continue
		}

		// Backfill a blank icon on an already-seeded game.
		if existing.Icon == "" {
			existing.Icon = def.game.Icon
			if err := s.gameRepo.Update(ctx, existing); err != nil {
				return err
			}
			s.logger.Info("default game icon updated", zap.String("name", existing.Name))
		}
	}
	return nil
}
