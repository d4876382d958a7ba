package party

import (
	"fmt"
	"testing"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

func msg(body string) domain.ChatMessage {
	return domain.ChatMessage{ID: body, Body: body}
}

func TestRingBuffer_New(t *testing.T) {
	rb := NewRingBuffer(10)

	if rb.Len() != 0 {
		t.Errorf("Expected empty buffer, got %d elements", rb.Len())
	}
	if rb.Cap() != 10 {
		t.Errorf("Expected capacity 10, got %d", rb.Cap())
	}
}

func TestRingBuffer_ZeroCapacityRaised(t *testing.T) {
	rb := NewRingBuffer(0)
	rb.Add(msg("a"))
	rb.Add(msg("b"))

	all := rb.GetAll()
	if len(all) != 1 || all[0].Body != "b" {
		t.Errorf("Expected only the latest message, got %v", all)
	}
}

func TestRingBuffer_AddAndGetAll(t *testing.T) {
	rb := NewRingBuffer(5)

	rb.Add(msg("msg1"))
	rb.Add(msg("msg2"))
	rb.Add(msg("msg3"))

	if rb.Len() != 3 {
		t.Fatalf("Expected 3 elements, got %d", rb.Len())
	}

	all := rb.GetAll()
	if len(all) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(all))
	}
	if all[0].Body != "msg1" {
		t.Errorf("Expected msg1 first, got %s", all[0].Body)
	}
	if all[2].Body != "msg3" {
		t.Errorf("Expected msg3 last, got %s", all[2].Body)
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 1; i <= 3; i++ {
		if _, evicted := rb.Add(msg(fmt.Sprintf("msg%d", i))); evicted {
			t.Fatalf("Unexpected eviction while filling, at msg%d", i)
		}
	}

	old, evicted := rb.Add(msg("msg4"))
	if !evicted || old.Body != "msg1" {
		t.Errorf("Expected msg1 to be evicted, got %v (%v)", old.Body, evicted)
	}
	rb.Add(msg("msg5"))

	if rb.Len() != 3 {
		t.Fatalf("Expected 3 elements (capped), got %d", rb.Len())
	}

	expected := []string{"msg3", "msg4", "msg5"}
	all := rb.GetAll()
	for i, exp := range expected {
		if all[i].Body != exp {
			t.Errorf("Position %d: expected %s, got %s", i, exp, all[i].Body)
		}
	}

	last, ok := rb.Last()
	if !ok || last.Body != "msg5" {
		t.Errorf("Expected last to be msg5, got %s", last.Body)
	}
}

func TestRingBuffer_Clear(t *testing.T) {
	rb := NewRingBuffer(5)

	rb.Add(msg("msg1"))
	rb.Add(msg("msg2"))
	rb.Clear()

	if rb.Len() != 0 {
		t.Errorf("Expected empty after clear, got %d", rb.Len())
	}
	if all := rb.GetAll(); all != nil {
		t.Errorf("Expected nil from empty buffer, got %v", all)
	}
	if _, ok := rb.Last(); ok {
		t.Error("Expected no last message after clear")
	}
}

func TestRingBuffer_Empty(t *testing.T) {
	rb := NewRingBuffer(5)

	if all := rb.GetAll(); all != nil {
		t.Errorf("Expected nil from empty buffer, got %v", all)
	}
}
