package util

// 存储后端类型，与 storage.type 配置取值一致
const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// MIME 类型前缀
const (
	MimeImage       = "image/"
	MimeVideo       = "video/"
	MimeOctetStream = "application/octet-stream"
)
