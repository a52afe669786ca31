package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"portal-berita-server/internal/db"
	"portal-berita-server/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mockGalleryDoc(t *testing.T, img *model.GalleryImage) bson.D {
	t.Helper()
	doc, err := toGalleryDocument(img)
	if err != nil {
		t.Fatalf("toGalleryDocument: %v", err)
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return d
}

func findStarted(mt *mtest.T, name string) *event.CommandStartedEvent {
	mt.Helper()
	for _, e := range mt.GetAllStartedEvents() {
		if e.CommandName == name {
			return e
		}
	}
	mt.Fatalf("未找到 %s 命令", name)
	return nil
}

// 测试内容：验证 Mongo 图库列表按标签过滤并按 createdAt 倒序排序。
func TestMongoGalleryRepository_ListByTag(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("tag filter", func(mt *mtest.T) {
		store := NewMongoGalleryRepository(mt.DB)
		img := newImage(model.NewID(), "pantai", "beaches")
		img.ID = model.NewID()
		img.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
		ns := mt.DB.Name() + "." + db.CollectionGallery
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, mockGalleryDoc(mt.T, img)))

		images, err := store.List(context.Background(), "beaches")
		if err != nil || len(images) != 1 || images[0].ID != img.ID {
			mt.Fatalf("非预期结果: images=%+v err=%v", images, err)
		}

		cmd := findStarted(mt, "find").Command
		if tag := cmd.Lookup("filter", "tags").StringValue(); tag != "beaches" {
			mt.Fatalf("期望按 tags 过滤，实际为 %v", cmd)
		}
		sort := cmd.Lookup("sort").Document()
		elems, _ := sort.Elements()
		if len(elems) != 2 || elems[0].Key() != "createdAt" {
			mt.Fatalf("期望先按 createdAt 排序: %v", sort)
		}
		if dir, _ := elems[0].Value().AsInt64OK(); dir != -1 {
			mt.Fatalf("期望倒序: %v", sort)
		}
	})

	mt.Run("no tag", func(mt *mtest.T) {
		store := NewMongoGalleryRepository(mt.DB)
		ns := mt.DB.Name() + "." + db.CollectionGallery
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		images, err := store.List(context.Background(), "")
		if err != nil || images == nil || len(images) != 0 {
			mt.Fatalf("期望空切片: images=%v err=%v", images, err)
		}
		if _, err := findStarted(mt, "find").Command.Lookup("filter").Document().LookupErr("tags"); err == nil {
			mt.Fatalf("未指定标签时不应过滤 tags")
		}
	})
}

// 测试内容：验证 Mongo 图库更新只 $set 传入字段，删除未命中返回 ErrNotFound。
func TestMongoGalleryRepository_UpdateAndDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update sets fields", func(mt *mtest.T) {
		store := NewMongoGalleryRepository(mt.DB)
		img := newImage(model.NewID(), "kota baru", "city")
		img.ID = model.NewID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: mockGalleryDoc(mt.T, img)}))

		title := "kota baru"
		got, err := store.Update(context.Background(), img.ID, GalleryUpdate{Title: &title})
		if err != nil || got.Title != title {
			mt.Fatalf("非预期结果: image=%+v err=%v", got, err)
		}

		set := findStarted(mt, "findAndModify").Command.Lookup("update", "$set").Document()
		if set.Lookup("title").StringValue() != title {
			mt.Fatalf("期望 $set title: %v", set)
		}
		if _, err := set.LookupErr("updatedAt"); err != nil {
			mt.Fatalf("期望同时更新 updatedAt: %v", set)
		}
		if _, err := set.LookupErr("tags"); err == nil {
			mt.Fatalf("未传入的 tags 不应写入: %v", set)
		}
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		store := NewMongoGalleryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		if err := store.Delete(context.Background(), model.NewID()); !errors.Is(err, db.ErrNotFound) {
			mt.Fatalf("期望 ErrNotFound，实际为 %v", err)
		}
	})

	mt.Run("delete existing", func(mt *mtest.T) {
		store := NewMongoGalleryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		if err := store.Delete(context.Background(), model.NewID()); err != nil {
			mt.Fatalf("Delete: %v", err)
		}
	})
}
