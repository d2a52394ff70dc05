package log

const (
	KeyAppName            = "app"
	KeyAuthToken          = "authToken"
	KeyBody               = "body"
	KeyCacheKey           = "cacheKey"
	KeyCart               = "cart"
	KeyCartID             = "cartId"
	KeyCartItemID         = "cartItemId"
	KeyCartItemQuantity   = "cartItemQuantity"
	KeyCategory           = "category"
	KeyCategoryID         = "categoryId"
	KeyConfig             = "config"
	KeyDbURL              = "dbUrl"
	KeyEmail              = "email"
	KeyExt                = "ext"
	KeyFilename           = "filename"
	KeyHeader             = "header"
	KeyImagePath          = "imagePath"
	KeyJSONCache          = "jsonCache"
	KeyPage               = "page"
	KeyPathValues         = "pathValues"
	KeyProcess            = "process"
	KeyProduct            = "product"
	KeyProductID          = "productId"
	KeyProducts           = "products"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestID          = "requestId"
	KeyRequestIP          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRetry              = "retry"
	KeySlug               = "slug"
	KeySpanID             = "spanId"
	KeySubcategory        = "subcategory"
	KeyTag                = "tag"
	KeyToken              = "token"
	KeyTraceID            = "traceId"
	KeyUpload             = "upload"
	KeyUserID             = "userId"
	KeyVariant            = "variant"
	KeyVariants           = "variants"
)
