package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testCardComponent struct {
	ID string
}

type testSpriteComponent struct {
	W, H int
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始
	if id1 != 1 || id2 != 2 {
		t.Errorf("IDs = (%d, %d), want (1, 2)", id1, id2)
	}
	if em.EntityCount() != 2 {
		t.Errorf("EntityCount() = %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testCardComponent{ID: "ace"})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testCardComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}
	if comp.(*testCardComponent).ID != "ace" {
		t.Errorf("ID = %s, want ace", comp.(*testCardComponent).ID)
	}

	if em.HasComponent(id, reflect.TypeOf(&testSpriteComponent{})) {
		t.Error("Should not have sprite component")
	}
}

// TestGenericGet 测试泛型访问
func TestGenericGet(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testSpriteComponent{W: 120, H: 168})

	sprite, ok := Get[*testSpriteComponent](em, id)
	if !ok {
		t.Fatal("Get[*testSpriteComponent] should succeed")
	}
	if sprite.W != 120 || sprite.H != 168 {
		t.Errorf("sprite = %+v", sprite)
	}

	if _, ok := Get[*testCardComponent](em, id); ok {
		t.Error("Get[*testCardComponent] should fail")
	}
	if _, ok := Get[*testSpriteComponent](em, 99); ok {
		t.Error("Get on unknown entity should fail")
	}
}

func TestQuerySorted(t *testing.T) {
	em := NewEntityManager()
	var ids []EntityID
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		if i%2 == 0 {
			em.AddComponent(id, &testCardComponent{})
			ids = append(ids, id)
		}
	}

	got := Query[*testCardComponent](em)
	if len(got) != len(ids) {
		t.Fatalf("Query returned %d entities, want %d", len(got), len(ids))
	}
	for i := range ids {
		if got[i] != ids[i] {
			t.Errorf("got[%d] = %d, want %d", i, got[i], ids[i])
		}
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	em.AddComponent(id1, &testCardComponent{})
	em.AddComponent(id1, &testSpriteComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testCardComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testSpriteComponent{})

	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testCardComponent{}),
		reflect.TypeOf(&testSpriteComponent{}),
	)
	if len(entities) != 1 || entities[0] != id1 {
		t.Errorf("GetEntitiesWith(card, sprite) = %v, want [%d]", entities, id1)
	}

	if got := em.GetEntitiesWith(reflect.TypeOf(&testCardComponent{})); len(got) != 2 {
		t.Errorf("Expected 2 entities with card component, got %d", len(got))
	}
}

// TestDestroyEntityRunsHooks 删除钩子在清理时对每个实体调用一次
func TestDestroyEntityRunsHooks(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	em.AddComponent(id1, &testCardComponent{ID: "a"})
	em.AddComponent(id2, &testCardComponent{ID: "b"})

	var destroyed []string
	em.OnDestroy(func(id EntityID) {
		// 钩子执行时组件仍然可用
		card, ok := Get[*testCardComponent](em, id)
		if !ok {
			t.Errorf("entity %d lost its component before hook", id)
			return
		}
		destroyed = append(destroyed, card.ID)
	})

	em.DestroyEntity(id1)
	em.DestroyEntity(id1)

	if !em.Exists(id1) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	em.RemoveMarkedEntities()

	if em.Exists(id1) {
		t.Error("Entity should be removed after cleanup")
	}
	if !em.Exists(id2) {
		t.Error("id2 should still exist")
	}
	if len(destroyed) != 1 || destroyed[0] != "a" {
		t.Errorf("destroyed = %v, want [a]", destroyed)
	}
}

func TestRemoveComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testSpriteComponent{})
	em.RemoveComponent(id, reflect.TypeOf(&testSpriteComponent{}))

	if em.HasComponent(id, reflect.TypeOf(&testSpriteComponent{})) {
		t.Error("Component should be removed")
	}
}
