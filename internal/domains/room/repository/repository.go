package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/internal/domains/room/model"
	tagModel "roost/internal/domains/tag/model"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/logger"
	gRepo "roost/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	CreateWithTags(ctx context.Context, model model.Room, tagIDs []string) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	GetTags(ctx context.Context, roomID string) ([]tagModel.Tag, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var amenityAssociation = gRepo.Association{
	JoinTable:     model.JoinTableName,
	EntityColumn:  model.JoinEntityField,
	RefColumn:     model.JoinTagField,
	RefTable:      tagModel.TableName,
	RefPrimary:    tagModel.FieldID,
	RefKindColumn: tagModel.FieldKind,
	RefKind:       tagModel.KindAmenity,
}

// CreateWithTags inserts a room and attaches its amenity tags in one
// transaction. Either everything lands or nothing does.
func (repo *repositoryImpl) CreateWithTags(ctx context.Context, room model.Room, tagIDs []string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.CreateWithTags")
	defer scope.End()
	defer scope.TraceIfError(err)

	return amenityAssociation.CreateWithRefs(ctx, repo.db, repo.otel, room.ID, tagIDs, func(tx *sqlx.Tx) error {
		return repo.InsertTx(ctx, tx, room)
	})
}

func (repo *repositoryImpl) GetTags(ctx context.Context, roomID string) (tags []tagModel.Tag, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetTags")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT t.* FROM %s t JOIN %s rt ON rt.%s = t.%s WHERE rt.%s = $1 ORDER BY t.%s",
		tagModel.TableName, model.JoinTableName, model.JoinTagField, tagModel.FieldID, model.JoinEntityField, tagModel.FieldName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &tags, query, roomID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get room tags: %w", err)
	}

	return tags, nil
}
