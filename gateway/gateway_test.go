package gateway

import "testing"

func TestVerifySignatureKnownVector(t *testing.T) {
	// HMAC-SHA256("order_MkWq1|pay_H8sK2", "test_secret")
	sig := "dab53b4b31bd69fc2311c2d18d7f77ae3df3c82704496b4af783151d9b7bbb2b"

	if !VerifySignature("order_MkWq1", "pay_H8sK2", sig, "test_secret") {
		t.Fatal("expected known-good signature to verify")
	}
}

func TestVerifySignatureIsDeterministic(t *testing.T) {
	sig := "9a60e79d7fd2b227f8f755e947612776d667415c7f2b9f3ee4ebb5d7035a2ea8"

	for i := 0; i < 3; i++ {
		if !VerifySignature("order_1", "pay_1", sig, "rzp_secret_abc") {
			t.Fatalf("verification flapped on attempt %d", i)
		}
	}
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	sig := "dab53b4b31bd69fc2311c2d18d7f77ae3df3c82704496b4af783151d9b7bbb2b"

	// Flip a single hex digit.
	tampered := "eab53b4b31bd69fc2311c2d18d7f77ae3df3c82704496b4af783151d9b7bbb2b"
	if VerifySignature("order_MkWq1", "pay_H8sK2", tampered, "test_secret") {
		t.Fatal("tampered signature must not verify")
	}

	if VerifySignature("order_MkWq1", "pay_H8sK2", sig, "wrong_secret") {
		t.Fatal("signature must not verify under a different secret")
	}
	if VerifySignature("order_other", "pay_H8sK2", sig, "test_secret") {
		t.Fatal("signature must be bound to the order id")
	}
	if VerifySignature("order_MkWq1", "pay_H8sK2", "", "test_secret") {
		t.Fatal("empty signature must not verify")
	}
}
