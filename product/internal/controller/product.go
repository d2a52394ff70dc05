package controller

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/grocery/internal/errors"
	inHttp "github.com/Alturino/grocery/internal/http"
	"github.com/Alturino/grocery/internal/log"
	inOtel "github.com/Alturino/grocery/internal/otel"
	"github.com/Alturino/grocery/product/internal/otel"
	"github.com/Alturino/grocery/product/internal/service"
	"github.com/Alturino/grocery/product/pkg/request"
)

const (
	imageFormField = "image"
	maxUploadBytes = 10 << 20
)

type ProductController struct {
	service *service.ProductService
}

// AttachProductController mounts the read routes on public and the write
// routes on authed.
func AttachProductController(public *mux.Router, authed *mux.Router, service *service.ProductService) {
	controller := ProductController{service: service}

	authed.HandleFunc("/products", controller.InsertProduct).Methods(http.MethodPost)
	authed.HandleFunc("/products/{productId}/image", controller.UploadImage).Methods(http.MethodPut)

	public.HandleFunc("/products", controller.FindProducts).Methods(http.MethodGet)
	public.HandleFunc("/products/{productId}", controller.FindProductById).Methods(http.MethodGet)
}

func (p ProductController) InsertProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController InsertProduct").Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Product{}
	if err := inHttp.DecodeJSON(r, &reqBody); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Any(log.KeyRequestBody, reqBody).Logger()
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	c = logger.WithContext(c)
	product, err := p.service.InsertProduct(c, reqBody)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyProductID, product.ID.String()).Msg("inserted product")

	writeProduct(c, w, http.StatusCreated, "successfully inserted product", product.View())
}

func (p ProductController) FindProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProducts")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController FindProducts").Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing page").Logger()
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			err = inErrors.InvalidArgument("page=%q is not a number", raw)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteErrorResponse(c, w, err)
			return
		}
		page = parsed
	}
	logger = logger.With().Int(log.KeyPage, page).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	c = logger.WithContext(c)
	products, err := p.service.FindProducts(c, page)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found products")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": http.StatusOK,
		"message":    "successfully found products",
		"data":       products,
	})
}

func (p ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController FindProductById").Logger()

	logger = logger.With().Str(log.KeyProcess, "validating productId").Logger()
	productID, err := inHttp.PathUUID(r, "productId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().
		Str(log.KeyProcess, "finding product").
		Str(log.KeyProductID, productID.String()).
		Logger()
	c = logger.WithContext(c)
	product, err := p.service.FindProductById(c, productID)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("found product")

	writeProduct(c, w, http.StatusOK, "successfully found product", product.View())
}

func (p ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UploadImage")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController UploadImage").Logger()

	logger = logger.With().Str(log.KeyProcess, "validating productId").Logger()
	productID, err := inHttp.PathUUID(r, "productId")
	if err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, productID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "reading image form file").Logger()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		err = inErrors.InvalidArgument("failed reading form file=%s with error=%s", imageFormField, err.Error())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	defer file.Close()
	logger = logger.With().Str(log.KeyFilename, header.Filename).Logger()

	logger = logger.With().Str(log.KeyProcess, "uploading image").Logger()
	logger.Info().Msg("uploading image")
	c = logger.WithContext(c)
	product, err := p.service.UploadImage(c, productID, header.Filename, file)
	if err != nil {
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("uploaded image")

	writeProduct(c, w, http.StatusOK, "successfully uploaded product image", product.View())
}

func writeProduct(c context.Context, w http.ResponseWriter, statusCode int, message string, product any) {
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     inHttp.StatusSuccess,
		"statusCode": statusCode,
		"message":    message,
		"data":       map[string]interface{}{"product": product},
	})
}
