//go:build e2e

package e2e

import (
	"net/http"
	"net/http/httptest"
)

// stubBannerHTML mimics the CookieYes markup the booking site ships: the
// consent container, the preference center with per-category switches, and
// the cookie the CMP writes on each outcome. The consent cookie is written
// after a short delay to reproduce the CMP's asynchronous persistence, which
// is what the polling engine exists for.
const stubBannerHTML = `<!DOCTYPE html>
<html>
<head><title>Fernweh Travel</title></head>
<body>
<h1>Book your next trip</h1>
<div class="cky-consent-container">
  <button data-cky-tag="accept-button">Accept All</button>
  <button data-cky-tag="reject-button">Reject All</button>
  <button data-cky-tag="settings-button">Customize</button>
</div>
<div class="cky-preference-center" style="display:none">
  <label><input type="checkbox" id="ckySwitchfunctional"> Functional</label>
  <label><input type="checkbox" id="ckySwitchanalytics"> Analytics</label>
  <label><input type="checkbox" id="ckySwitchperformance"> Performance</label>
  <label><input type="checkbox" id="ckySwitchadvertisement"> Advertisement</label>
  <button data-cky-tag="detail-save-btn">Save My Preferences</button>
</div>
<script>
(function () {
  var writeDelayMs = 250;

  function writeConsent(consent, cats) {
    var parts = [
      "consentid:stub0000000000000000",
      "consent:" + consent,
      "action:yes",
      "necessary:yes",
      "functional:" + (cats.functional ? "yes" : "no"),
      "analytics:" + (cats.analytics ? "yes" : "no"),
      "performance:" + (cats.performance ? "yes" : "no"),
      "advertisement:" + (cats.advertisement ? "yes" : "no"),
      "other:" + (cats.other ? "yes" : "no")
    ];
    setTimeout(function () {
      document.cookie = "cookieyes-consent=" + parts.join(",") + "; path=/";
      if (cats.analytics) {
        document.cookie = "_ga=GA1.1.123456789.1; path=/";
        document.cookie = "_gid=GA1.1.987654321.1; path=/";
      }
      if (cats.advertisement) {
        document.cookie = "_fbp=fb.1.1.stub; path=/";
      }
      document.querySelector(".cky-consent-container").style.display = "none";
      document.querySelector(".cky-preference-center").style.display = "none";
    }, writeDelayMs);
  }

  function allCats(v) {
    return { functional: v, analytics: v, performance: v, advertisement: v, other: v };
  }

  document.querySelector('button[data-cky-tag="accept-button"]').addEventListener("click", function () {
    writeConsent("yes", allCats(true));
  });
  document.querySelector('button[data-cky-tag="reject-button"]').addEventListener("click", function () {
    writeConsent("no", allCats(false));
  });
  document.querySelector('button[data-cky-tag="settings-button"]').addEventListener("click", function () {
    document.querySelector(".cky-preference-center").style.display = "block";
  });
  document.querySelector('button[data-cky-tag="detail-save-btn"]').addEventListener("click", function () {
    writeConsent("yes", {
      functional: document.getElementById("ckySwitchfunctional").checked,
      analytics: document.getElementById("ckySwitchanalytics").checked,
      performance: document.getElementById("ckySwitchperformance").checked,
      advertisement: document.getElementById("ckySwitchadvertisement").checked,
      other: false
    });
  });
})();
</script>
</body>
</html>`

// newStubSite serves the fake banner page on a local listener.
func newStubSite() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(stubBannerHTML))
	}))
}
