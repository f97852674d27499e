//go:build !nogpu

package gpu

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// halProviderMock is a gpucontext.DeviceProvider that shares a HAL device.
type halProviderMock struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (m *halProviderMock) Device() gpucontext.Device             { return &mockDevice{} }
func (m *halProviderMock) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *halProviderMock) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *halProviderMock) SurfaceFormat() gputypes.TextureFormat { return m.format }
func (m *halProviderMock) HalDevice() any                        { return m.device }
func (m *halProviderMock) HalQueue() any                         { return m.queue }
