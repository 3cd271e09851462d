package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"estate/config"
	"estate/infras/otel"
	"estate/infras/s3"
	"estate/internal/domains/property/model"
	"estate/internal/domains/property/model/dto"
	"estate/internal/domains/property/repository"
	"estate/shared"
	"estate/shared/base64"
	"estate/shared/cache"
	"estate/shared/constant"
	gDto "estate/shared/dto"
	"estate/shared/failure"
	"estate/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"
	cacheTrendProperty  = "property:trend"
)

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest) (dto.PropertyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	Search(ctx context.Context, params gDto.QueryParams, req dto.SearchPropertiesRequest) (dto.GetPropertiesResponse, error)
	MyProperties(ctx context.Context, params gDto.QueryParams) (dto.GetPropertiesResponse, error)
	Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	Favorites(ctx context.Context, params gDto.QueryParams) (dto.GetPropertiesResponse, error)
	EstimateTrend(ctx context.Context, zipPrefix string) (dto.TrendResponse, error)
}

type serviceImpl struct {
	repo     repository.Property
	favorite repository.Favorite
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(repo repository.Property, favorite repository.Favorite, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Property {
	return &serviceImpl{
		repo:     repo,
		favorite: favorite,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !slices.Contains(model.Types, req.Type) {
		return res, failure.BadRequestFromString("unknown property type") // nolint:wrapcheck
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.ImageBase64 != nil {
		imageURL, uploadedObjectName, err = s.uploadImage(ctx, *req.ImageBase64, req.ImageContentType)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload property image")

			return res, err
		}
	}

	prop := req.ToModel(user, imageURL)

	if err = s.repo.Insert(ctx, prop); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()

	res.FromModel(prop)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	prop, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if prop.ID == constant.Empty {
		return res, failure.NotFound("property not found") // nolint:wrapcheck
	}

	res.FromModel(prop)
	res.Views = prop.Views + 1

	if user != constant.Empty {
		res.IsFavorited, err = s.favorite.Exist(ctx, favoriteFilter(id, user))
		if err != nil {
			log.Error().Err(err).Msg("failed to check favorite")

			return res, fmt.Errorf("failed to check favorite: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.repo.IncrementViews(c, id); err != nil {
			log.Error().Err(err).Msg("failed to increment property views")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Search(ctx context.Context, params gDto.QueryParams, req dto.SearchPropertiesRequest) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.GetAll(ctx, params, req.BuildFilter())
}

func (s *serviceImpl) MyProperties(ctx context.Context, params gDto.QueryParams) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyProperties")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldOwnerID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	return s.GetAll(ctx, params, filter)
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("property not found") // nolint:wrapcheck
	}

	if current.OwnerID != user && role != constant.RoleAdmin {
		return failure.Forbidden("not the property owner") // nolint:wrapcheck
	}

	if req.Type != constant.Empty && !slices.Contains(model.Types, req.Type) {
		return failure.BadRequestFromString("unknown property type") // nolint:wrapcheck
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	if req.ImageBase64 != nil {
		imageURL, uploadedObjectName, err = s.uploadImage(ctx, *req.ImageBase64, req.ImageContentType)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload property image")

			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImageURL] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update property")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update property: %w", err)
	}

	if imageURL != constant.Empty && current.ImageURL != nil {
		bucketName := s.cfg.External.S3.BucketName
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, *current.ImageURL)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	s.invalidateProperty(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("property not found") // nolint:wrapcheck
	}

	if current.OwnerID != user && role != constant.RoleAdmin {
		return failure.Forbidden("not the property owner") // nolint:wrapcheck
	}

	if err = s.favorite.Delete(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FavoriteFieldPropertyID, Value: id, Operator: gDto.FilterOperatorEq, Table: model.FavoriteTableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}); err != nil {
		log.Error().Err(err).Msg("failed to delete property favorites")

		return fmt.Errorf("failed to delete property favorites: %w", err)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	if current.ImageURL != nil {
		bucketName := s.cfg.External.S3.BucketName
		objectName := s.s3.GetObjectNameFromURL(bucketName, *current.ImageURL)
		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}
	}

	s.invalidateProperty(ctx, id)

	return nil
}

// SetStatus covers direct landlord edits of availability. Rent flips done by
// the booking lifecycle go through the booking repository transaction instead.
func (s *serviceImpl) SetStatus(ctx context.Context, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return err
	}

	if current.ID == constant.Empty {
		return failure.NotFound("property not found") // nolint:wrapcheck
	}

	if current.OwnerID != user && role != constant.RoleAdmin {
		return failure.Forbidden("not the property owner") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter); err != nil {
		log.Error().Err(err).Msg("failed to update property status")

		return fmt.Errorf("failed to update property status: %w", err)
	}

	s.invalidateProperty(ctx, id)

	return nil
}

func (s *serviceImpl) ToggleFavorite(ctx context.Context, id string) (favorited bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleFavorite")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return false, fmt.Errorf("failed to check property existence: %w", err)
	}

	if !exist {
		return false, failure.NotFound("property not found") // nolint:wrapcheck
	}

	filter := favoriteFilter(id, user)

	favorited, err = s.favorite.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check favorite")

		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	if favorited {
		if err = s.favorite.Delete(ctx, filter); err != nil {
			log.Error().Err(err).Msg("failed to remove favorite")

			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}

		return false, nil
	}

	if err = s.favorite.Insert(ctx, model.Favorite{
		PropertyID: id,
		UserID:     user,
		CreatedAt:  timezone.Now(),
	}); err != nil {
		log.Error().Err(err).Msg("failed to add favorite")

		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	return true, nil
}

func (s *serviceImpl) Favorites(ctx context.Context, params gDto.QueryParams) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Favorites")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	rows, err := s.favorite.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FavoriteFieldUserID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.FavoriteTableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get favorites")

		return res, fmt.Errorf("failed to get favorites: %w", err)
	}

	if len(rows) == 0 {
		res.Properties = []dto.PropertyResponse{}

		return res, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.PropertyID
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	res, err = s.GetAll(ctx, params, filter)
	if err != nil {
		return res, err
	}

	for i := range res.Properties {
		res.Properties[i].IsFavorited = true
	}

	return res, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, file, contentType string) (url, objectName string, err error) {
	if contentType == constant.Empty {
		contentType = base64.GetContentType(file)
	}

	data, err := base64.Decode(file)
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to decode image: %w", err)
	}

	filename := uuid.NewString()
	if parts := strings.Split(contentType, "/"); len(parts) == 2 && parts[1] != constant.Empty {
		filename = fmt.Sprintf("%s.%s", filename, parts[1])
	}

	url, err = s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, filename, contentType, data)
	if err != nil {
		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, filename, nil
}

func (s *serviceImpl) invalidateProperty(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete property cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
		shared.InvalidateCaches(c, s.cache, cacheTrendProperty)
	}()
}

func favoriteFilter(propertyID, userID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FavoriteFieldPropertyID, Value: propertyID, Operator: gDto.FilterOperatorEq, Table: model.FavoriteTableName},
			gDto.Filter{Field: model.FavoriteFieldUserID, Value: userID, Operator: gDto.FilterOperatorEq, Table: model.FavoriteTableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}
