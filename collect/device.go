package collect

import (
	"encoding/json"
	"fmt"
	"sort"
)

// deviceHealth fills in the device category: a cluster-wide health check plus
// one metrics fetch per listed device, one device at a time, keeping only the
// most recent metric record for each.
func (c *Collector) deviceHealth(report Report) error {
	check, err := c.query(query{prefix: "device check-health"})
	if err != nil {
		return err
	}
	report["device_check_health"] = check

	raw, err := c.mon("device ls", nil)
	if err != nil {
		return err
	}

	var devices []map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &devices); err != nil {
			return fmt.Errorf("decoding device list: %w", err)
		}
	}
	if len(devices) == 0 {
		c.log.Info("device health is enabled, but this ceph version reports no devices")
		report["device_status"] = []any{}
		return nil
	}

	for _, device := range devices {
		devid, ok := device["devid"].(string)
		if !ok {
			return fmt.Errorf("device list entry has no devid: %v", device)
		}
		metrics, err := c.latestMetrics(devid)
		if err != nil {
			return err
		}
		device["metrics"] = metrics
	}
	report["device_status"] = devices
	return nil
}

// latestMetrics fetches the health metrics for one device and keeps only the
// lexicographically last timestamp key, which is the most recent record.
func (c *Collector) latestMetrics(devid string) (map[string]any, error) {
	raw, err := c.mon("device get-health-metrics", map[string]any{"devid": devid})
	if err != nil {
		return nil, err
	}
	latest := map[string]any{}
	if len(raw) == 0 {
		return latest, nil
	}

	var metrics map[string]any
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, fmt.Errorf("decoding health metrics for device %q: %w", devid, err)
	}
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		last := keys[len(keys)-1]
		latest[last] = metrics[last]
	}
	return latest, nil
}
