package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID 生成新的文档 ID（24 位十六进制 ObjectID），各存储后端统一使用
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID 判断 ID 是否为合法的 ObjectID 十六进制串
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
