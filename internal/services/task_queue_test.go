package services

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestTaskTypeOCRIngest_Constant(t *testing.T) {
	if TaskTypeOCRIngest != "ocr:ingest" {
		t.Errorf("TaskTypeOCRIngest = %q, expected %q", TaskTypeOCRIngest, "ocr:ingest")
	}
}

func TestSyncQueue_New(t *testing.T) {
	queue := NewSyncQueue()
	if queue == nil {
		t.Error("NewSyncQueue should not return nil")
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("SyncQueue.IsAsync() should return false")
	}
}

func TestSyncQueue_Close(t *testing.T) {
	queue := NewSyncQueue()
	err := queue.Close()
	if err != nil {
		t.Errorf("SyncQueue.Close() should return nil, got %v", err)
	}
}

func TestSyncQueue_EnqueueWithoutProcessor(t *testing.T) {
	queue := NewSyncQueue()
	task := &OCRIngestTask{DocumentID: 1}

	err := queue.Enqueue(task)
	if err != nil {
		t.Errorf("Enqueue without processor should not error, got %v", err)
	}
}

func TestSyncQueue_ProcessorInvoked(t *testing.T) {
	queue := NewSyncQueue()

	var mu sync.Mutex
	var got uint
	done := make(chan struct{})

	queue.SetProcessor(func(ctx context.Context, task *OCRIngestTask) error {
		mu.Lock()
		got = task.DocumentID
		mu.Unlock()
		close(done)
		return nil
	})

	if err := queue.Enqueue(&OCRIngestTask{DocumentID: 7}); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor was not invoked")
	}

	mu.Lock()
	defer mu.Unlock()
	if got != 7 {
		t.Errorf("processor received document_id %d, expected 7", got)
	}
}

func TestAsyncQueue_IsAsync(t *testing.T) {
	queue := &AsyncQueue{}
	if !queue.IsAsync() {
		t.Error("AsyncQueue.IsAsync() should return true")
	}
}
