package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/internal/domains/experience/model"
	tagModel "roost/internal/domains/tag/model"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/logger"
	gRepo "roost/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Experience interface {
	Insert(ctx context.Context, model model.Experience) error
	CreateWithTags(ctx context.Context, model model.Experience, tagIDs []string) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Experience, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Experience, error)
	GetTags(ctx context.Context, experienceID string) ([]tagModel.Tag, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Experience]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Experience {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Experience](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var perkAssociation = gRepo.Association{
	JoinTable:     model.JoinTableName,
	EntityColumn:  model.JoinEntityField,
	RefColumn:     model.JoinTagField,
	RefTable:      tagModel.TableName,
	RefPrimary:    tagModel.FieldID,
	RefKindColumn: tagModel.FieldKind,
	RefKind:       tagModel.KindPerk,
}

// CreateWithTags inserts an experience and attaches its perk tags in one
// transaction. Either everything lands or nothing does.
func (repo *repositoryImpl) CreateWithTags(ctx context.Context, experience model.Experience, tagIDs []string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".experience.CreateWithTags")
	defer scope.End()
	defer scope.TraceIfError(err)

	return perkAssociation.CreateWithRefs(ctx, repo.db, repo.otel, experience.ID, tagIDs, func(tx *sqlx.Tx) error {
		return repo.InsertTx(ctx, tx, experience)
	})
}

func (repo *repositoryImpl) GetTags(ctx context.Context, experienceID string) (tags []tagModel.Tag, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".experience.GetTags")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT t.* FROM %s t JOIN %s et ON et.%s = t.%s WHERE et.%s = $1 ORDER BY t.%s",
		tagModel.TableName, model.JoinTableName, model.JoinTagField, tagModel.FieldID, model.JoinEntityField, tagModel.FieldName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &tags, query, experienceID); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get experience tags: %w", err)
	}

	return tags, nil
}
